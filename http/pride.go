// Package http provides HTTP-based implementations of the xlpipe
// repository and sequence source interfaces: the ProteomeXchange/PRIDE
// dataset client and the UniProt client.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/xenith-ms/xlpipe"
	"github.com/xenith-ms/xlpipe/fs"
)

// DefaultDatasetURL is the ProteomeXchange dataset announcement
// endpoint. The XML it returns lists every file published for a PXID.
const DefaultDatasetURL = "https://proteomecentral.proteomexchange.org/cgi/GetDataset"

// DefaultDownloadTimeout bounds a single file download. Raw files run
// to gigabytes, so this is much longer than a typical request timeout.
const DefaultDownloadTimeout = 30 * time.Minute

// Ensure PrideClient implements xlpipe.Repository at compile time.
var _ xlpipe.Repository = (*PrideClient)(nil)

// PrideClient lists and downloads dataset files from PRIDE via the
// ProteomeXchange announcement XML.
type PrideClient struct {
	client     *http.Client
	datasetURL string
}

// Option configures a PrideClient.
type Option func(*PrideClient)

// WithDatasetURL overrides the announcement endpoint. Used in tests.
func WithDatasetURL(u string) Option {
	return func(c *PrideClient) {
		c.datasetURL = u
	}
}

// NewPrideClient creates a new PrideClient with the given HTTP client.
// If client is nil, a client with DefaultDownloadTimeout is used.
func NewPrideClient(client *http.Client, opts ...Option) *PrideClient {
	if client == nil {
		client = &http.Client{Timeout: DefaultDownloadTimeout}
	}
	c := &PrideClient{
		client:     client,
		datasetURL: DefaultDatasetURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FileList returns the files announced for a dataset.
func (c *PrideClient) FileList(ctx context.Context, pxid string) ([]xlpipe.RemoteFile, error) {
	u := fmt.Sprintf("%s?ID=%s&outputMode=XML&test=no", c.datasetURL, url.QueryEscape(pxid))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, xlpipe.Errorf(xlpipe.ENOTFOUND, "dataset %s not found in ProteomeXchange", pxid)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, u)
	}

	files, err := parseDatasetXML(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing announcement for %s: %w", pxid, err)
	}
	if len(files) == 0 {
		return nil, xlpipe.Errorf(xlpipe.ENOTFOUND, "no files announced for %s", pxid)
	}

	return files, nil
}

// parseDatasetXML extracts the file list from a ProteomeXchange
// announcement document. Each DatasetFile carries its download
// location in a cvParam named URI.
func parseDatasetXML(r io.Reader) ([]xlpipe.RemoteFile, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parsing dataset XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty dataset XML")
	}

	var files []xlpipe.RemoteFile
	for _, fileList := range root.SelectElements("DatasetFileList") {
		for _, file := range fileList.SelectElements("DatasetFile") {
			name := strings.TrimSpace(file.SelectAttrValue("name", ""))

			var uri string
			for _, param := range file.SelectElements("cvParam") {
				if param.SelectAttrValue("name", "") == "URI" {
					uri = strings.TrimSpace(param.SelectAttrValue("value", ""))
					break
				}
			}
			if name == "" || uri == "" {
				continue
			}

			files = append(files, xlpipe.RemoteFile{
				Name: name,
				URL:  rewriteFTP(uri),
			})
		}
	}

	return files, nil
}

// rewriteFTP converts PRIDE FTP locations to their HTTPS equivalents.
// The EBI FTP tree is mirrored over HTTPS at the same path.
func rewriteFTP(uri string) string {
	if strings.HasPrefix(uri, "ftp://") {
		return "https://" + strings.TrimPrefix(uri, "ftp://")
	}
	return uri
}

// Download retrieves a remote file to the destination path. The write
// is staged and only committed once the body is fully read.
func (c *PrideClient) Download(ctx context.Context, file xlpipe.RemoteFile, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.URL, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d for %s", resp.StatusCode, file.URL)
	}

	stage, err := fs.NewStage(dest)
	if err != nil {
		return err
	}

	if _, err := io.Copy(stage, resp.Body); err != nil {
		_ = stage.Abort()
		return err
	}

	return stage.Commit()
}
