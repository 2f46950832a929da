// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dblp

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/pdiddy/profscan/pkg/types"
)

const defaultSearchLimit = 50

// DBLP publication search XML structures.
type publResult struct {
	Hits struct {
		Hits []struct {
			Info publInfo `xml:"info"`
		} `xml:"hit"`
	} `xml:"hits"`
}

type publInfo struct {
	Title   string `xml:"title"`
	Authors struct {
		Names []string `xml:"author"`
	} `xml:"authors"`
}

// SearchPublications queries for papers whose title contains keyword at the
// given venue and year. Missing titles degrade to "N/A" and missing author
// lists to empty, mirroring the API's habit of omitting sub-fields.
func (c *Client) SearchPublications(ctx context.Context, keyword, venue string, year, limit int) ([]types.PublicationHit, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	query := fmt.Sprintf("title:%s venue:%s year:%d", keyword, venue, year)

	resp, err := c.get(ctx, searchURL(publAPIBase, query, limit))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result publResult
	if err := xml.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parsing publication search response: %w", err)
	}

	var hits []types.PublicationHit
	for _, hit := range result.Hits.Hits {
		title := strings.TrimSpace(hit.Info.Title)
		if title == "" {
			title = "N/A"
		}
		h := types.PublicationHit{Title: title}
		for _, name := range hit.Info.Authors.Names {
			if name = strings.TrimSpace(name); name != "" {
				h.Authors = append(h.Authors, name)
			}
		}
		hits = append(hits, h)
	}
	return hits, nil
}

// DBLP author search XML structures.
type authorResult struct {
	Hits struct {
		Hits []struct {
			Info struct {
				URL string `xml:"url"`
			} `xml:"info"`
		} `xml:"hit"`
	} `xml:"hits"`
}

// SearchAuthor resolves a name to its profile URL, taking the top match
// only. A name with no match returns "" without an error; the caller treats
// absence as "skip this author".
func (c *Client) SearchAuthor(ctx context.Context, name string) (string, error) {
	resp, err := c.get(ctx, searchURL(authorAPIBase, name, 1))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result authorResult
	if err := xml.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("parsing author search response: %w", err)
	}

	if len(result.Hits.Hits) == 0 {
		return "", nil
	}
	return strings.TrimSpace(result.Hits.Hits[0].Info.URL), nil
}
