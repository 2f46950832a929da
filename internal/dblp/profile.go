// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dblp

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/pdiddy/profscan/pkg/types"
)

// DBLP person document XML structures. The document lists one <r> element
// per publication and carries affiliation as a typed <note> on the person.
type personDocument struct {
	Person struct {
		Notes []personNote `xml:"note"`
	} `xml:"person"`
	Records []struct{} `xml:"r"`
}

type personNote struct {
	Type string `xml:"type,attr"`
	Text string `xml:",chardata"`
}

// fetchPersonDocument retrieves and parses the XML form of a profile page.
func (c *Client) fetchPersonDocument(ctx context.Context, profileURL string) (*personDocument, error) {
	resp, err := c.get(ctx, profileURL+".xml")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var doc personDocument
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing person document: %w", err)
	}
	return &doc, nil
}

// PublicationCount fetches the profile document and counts its publication
// entries.
func (c *Client) PublicationCount(ctx context.Context, profileURL string) (int, error) {
	doc, err := c.fetchPersonDocument(ctx, profileURL)
	if err != nil {
		return 0, err
	}
	return len(doc.Records), nil
}

// Affiliation fetches the profile document and returns the affiliation
// note, or the Unknown sentinel when the profile does not carry one.
func (c *Client) Affiliation(ctx context.Context, profileURL string) (string, error) {
	doc, err := c.fetchPersonDocument(ctx, profileURL)
	if err != nil {
		return "", err
	}
	for _, note := range doc.Person.Notes {
		if note.Type == "affiliation" {
			if text := strings.TrimSpace(note.Text); text != "" {
				return text, nil
			}
		}
	}
	return types.UnknownAffiliation, nil
}
