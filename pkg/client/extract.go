package client

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// maxContentImageSize is the decoded-size ceiling for an extracted image.
// Larger images are silently dropped, not uploaded.
const maxContentImageSize = 5 * 1024 * 1024

const dataImagePrefix = "data:image/"

// ErrNoExtractableImages means the content contains <img> tags but no file
// could be extracted (payloads too large or undecodable)
var ErrNoExtractableImages = errors.New("content images are too large or invalid")

// ExtractContentImages parses editor HTML and converts every <img> whose src
// is a base64 image data URI into an in-memory file. Files are named by the
// img element's position in the document (1-based) and the inferred MIME
// subtype, e.g. "content-image-2.png".
//
// The src attributes are not rewritten to point at uploaded paths; the
// submitted content keeps its data URIs.
func ExtractContentImages(content string) ([]File, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}

	var files []File
	index := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "img" {
			index++
			if f, ok := decodeImageSrc(attrValue(n, "src"), index); ok {
				files = append(files, f)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(files) == 0 && strings.Contains(content, "<img") {
		return nil, ErrNoExtractableImages
	}
	return files, nil
}

// decodeImageSrc turns one data-URI src into a File. Non-data srcs, malformed
// URIs, undecodable payloads, and oversized results all return ok=false.
func decodeImageSrc(src string, index int) (File, bool) {
	if !strings.HasPrefix(src, dataImagePrefix) {
		return File{}, false
	}

	head, payload, found := strings.Cut(src, ",")
	if !found || !strings.HasSuffix(head, ";base64") {
		return File{}, false
	}

	// head is "data:image/<subtype>;base64"
	subtype := strings.TrimSuffix(strings.TrimPrefix(head, dataImagePrefix), ";base64")
	if subtype == "" {
		return File{}, false
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return File{}, false
	}
	if len(data) > maxContentImageSize {
		return File{}, false
	}

	return File{
		Name: fmt.Sprintf("content-image-%d.%s", index, subtype),
		Data: data,
	}, true
}

// attrValue returns the value of the named attribute, or ""
func attrValue(n *html.Node, name string) string {
	for _, attr := range n.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}
