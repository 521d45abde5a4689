package ingest

import (
	"fmt"
	"io"
	"time"

	"github.com/jlaffaye/ftp"
)

// ArchiveClient pulls historical yearly GeoJSON from an FTP mirror, for
// seasons the live WFS no longer serves.
type ArchiveClient struct {
	host string
	dir  string
}

func NewArchiveClient(host, dir string) *ArchiveClient {
	return &ArchiveClient{host: host, dir: dir}
}

// FetchYear retrieves <dir>/<country>_<year>_fuegos.geojson from the mirror
// via anonymous FTP.
func (a *ArchiveClient) FetchYear(country string, year int) ([]byte, error) {
	conn, err := ftp.Dial(a.host, ftp.DialWithTimeout(30*time.Second))
	if err != nil {
		return nil, fmt.Errorf("ftp dial: %w", err)
	}
	defer conn.Quit()

	if err := conn.Login("anonymous", "anonymous"); err != nil {
		return nil, fmt.Errorf("ftp login: %w", err)
	}

	path := fmt.Sprintf("%s/%s_%d_fuegos.geojson", a.dir, country, year)
	resp, err := conn.Retr(path)
	if err != nil {
		return nil, fmt.Errorf("ftp retr %s: %w", path, err)
	}
	defer resp.Close()

	body, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return body, nil
}
