package md2txt

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// HTTPConvertRequest configures HTTPConvert.
type HTTPConvertRequest struct {
	URL     string
	Client  *http.Client
	Writer  io.Writer
	Options []Option
}

// HTTPConvert fetches Markdown over HTTP(S) and converts the response body.
// A charset named in the Content-Type header other than UTF-8 is decoded to
// UTF-8 first.
func HTTPConvert(ctx context.Context, req HTTPConvertRequest) (Summary, error) {
	if req.URL == "" {
		return Summary{}, fmt.Errorf("http convert: URL is required")
	}
	if req.Writer == nil {
		return Summary{}, fmt.Errorf("http convert: Writer is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	client := req.Client
	if client == nil {
		client = http.DefaultClient
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return Summary{}, fmt.Errorf("http convert: build request: %w", err)
	}
	if httpReq.URL.Scheme != "http" && httpReq.URL.Scheme != "https" {
		return Summary{}, fmt.Errorf("http convert: unsupported scheme %q", httpReq.URL.Scheme)
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return Summary{}, fmt.Errorf("http convert: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Summary{}, fmt.Errorf("http convert: status %s", resp.Status)
	}
	body, err := decodeBody(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return Summary{}, fmt.Errorf("http convert: %w", err)
	}
	return Convert(ConvertRequest{
		Reader:  body,
		Writer:  req.Writer,
		Options: req.Options,
	})
}

func decodeBody(body io.Reader, contentType string) (io.Reader, error) {
	if contentType == "" {
		return body, nil
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return body, nil
	}
	charset := strings.TrimSpace(params["charset"])
	if charset == "" {
		return body, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}
	if name, _ := htmlindex.Name(enc); name == "utf-8" {
		return body, nil
	}
	return transform.NewReader(body, enc.NewDecoder()), nil
}
