package http

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xenith-ms/xlpipe"
	"github.com/xenith-ms/xlpipe/fs"
)

// UniProt endpoints. The REST API serves per-accession FASTA entries;
// reference proteomes are published on the mirrored FTP tree.
const (
	DefaultUniProtAPIURL      = "https://rest.uniprot.org/uniprotkb"
	DefaultUniProtProteomeURL = "https://ftp.uniprot.org/pub/databases/uniprot/current_release/knowledgebase/reference_proteomes"
)

// Ensure UniProtClient implements xlpipe.SequenceSource at compile time.
var _ xlpipe.SequenceSource = (*UniProtClient)(nil)

// UniProtClient retrieves protein sequences from UniProt.
type UniProtClient struct {
	client      *http.Client
	apiURL      string
	proteomeURL string
}

// UniProtOption configures a UniProtClient.
type UniProtOption func(*UniProtClient)

// WithAPIURL overrides the REST endpoint. Used in tests.
func WithAPIURL(u string) UniProtOption {
	return func(c *UniProtClient) {
		c.apiURL = u
	}
}

// WithProteomeURL overrides the reference proteome endpoint. Used in tests.
func WithProteomeURL(u string) UniProtOption {
	return func(c *UniProtClient) {
		c.proteomeURL = u
	}
}

// NewUniProtClient creates a new UniProtClient with the given HTTP
// client. If client is nil, a client with a 5 minute timeout is used.
func NewUniProtClient(client *http.Client, opts ...UniProtOption) *UniProtClient {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Minute}
	}
	c := &UniProtClient{
		client:      client,
		apiURL:      DefaultUniProtAPIURL,
		proteomeURL: DefaultUniProtProteomeURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Proteins downloads the sequences for a list of UniProt accessions
// into a single FASTA file at dest.
func (c *UniProtClient) Proteins(ctx context.Context, accessions []string, dest string) error {
	stage, err := fs.NewStage(dest)
	if err != nil {
		return err
	}

	for _, accession := range accessions {
		entry, err := c.fetchEntry(ctx, accession)
		if err != nil {
			_ = stage.Abort()
			return err
		}
		if _, err := io.WriteString(stage, entry); err != nil {
			_ = stage.Abort()
			return err
		}
	}

	return stage.Commit()
}

// fetchEntry retrieves one accession's FASTA entry, newline-terminated.
func (c *UniProtClient) fetchEntry(ctx context.Context, accession string) (string, error) {
	u := fmt.Sprintf("%s/%s.fasta", c.apiURL, accession)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", xlpipe.Errorf(xlpipe.ENOTFOUND, "UniProt accession %s not found", accession)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, u)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	entry := string(body)
	if entry != "" && !strings.HasSuffix(entry, "\n") {
		entry += "\n"
	}
	return entry, nil
}

// Proteome downloads a UniProt reference proteome to dest, gunzipped.
func (c *UniProtClient) Proteome(ctx context.Context, proteomeID, domain, dest string) error {
	switch domain {
	case "Archaea", "Bacteria", "Eukaryota", "Viruses":
	default:
		return xlpipe.Errorf(xlpipe.EINVALID, "unknown proteome domain %q", domain)
	}

	u := fmt.Sprintf("%s/%s/%s.fasta.gz", c.proteomeURL, domain, proteomeID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return xlpipe.Errorf(xlpipe.ENOTFOUND, "reference proteome %s not found under %s", proteomeID, domain)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d for %s", resp.StatusCode, u)
	}

	gz, err := gzip.NewReader(resp.Body)
	if err != nil {
		return fmt.Errorf("decompressing proteome %s: %w", proteomeID, err)
	}
	defer gz.Close()

	stage, err := fs.NewStage(dest)
	if err != nil {
		return err
	}

	if _, err := io.Copy(stage, gz); err != nil {
		_ = stage.Abort()
		return err
	}

	return stage.Commit()
}
