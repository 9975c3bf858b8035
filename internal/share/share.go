package share

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"catalog-service/internal/blob"
	"catalog-service/internal/models"
)

// Mode tells the client which share path to take.
type Mode string

const (
	// ModeNative: attachments resolved; hand text plus files to the
	// device share sheet.
	ModeNative Mode = "native"
	// ModeLink: no attachment could be resolved; open the deep link with
	// the text alone. This is the fallback path, not a failure.
	ModeLink Mode = "link"
)

// Attachment is one shareable variant image.
type Attachment struct {
	VariantID string `json:"variantId"`
	ColorName string `json:"colorName"`
	FileName  string `json:"fileName"`
	URL       string `json:"url"`
}

// Message is the share output for a set of selected variants.
type Message struct {
	Text        string       `json:"text"`
	WhatsAppURL string       `json:"whatsappUrl"`
	Mode        Mode         `json:"mode"`
	Attachments []Attachment `json:"attachments"`
}

var whitespace = regexp.MustCompile(`\s+`)

// Build renders the plain-text share message and deep link for the selected
// variants. urls maps variant id to a resolved image URL; a variant missing
// from the map (its URL failed to resolve) still gets its text line, just
// without a URL and without an attachment.
func Build(p models.Product, selected []models.ColorVariant, urls map[string]string) Message {
	var lines []string
	lines = append(lines, "SKU: "+p.SKU)
	if p.Description != "" {
		lines = append(lines, p.Description)
	}
	lines = append(lines, "Selected colors:")

	var attachments []Attachment
	for _, v := range selected {
		parts := []string{"- " + v.ColorName}
		if v.VariantSKU != "" {
			parts = append(parts, fmt.Sprintf("(SKU: %s)", v.VariantSKU))
		}
		if u, ok := urls[v.ID]; ok && u != "" {
			parts = append(parts, u)
			attachments = append(attachments, Attachment{
				VariantID: v.ID,
				ColorName: v.ColorName,
				FileName:  attachmentFileName(p.SKU, v),
				URL:       u,
			})
		}
		lines = append(lines, strings.Join(parts, " "))
	}

	text := strings.Join(lines, "\n")
	mode := ModeNative
	if len(attachments) == 0 {
		mode = ModeLink
	}

	return Message{
		Text:        text,
		WhatsAppURL: "https://wa.me/?text=" + encodeComponent(text),
		Mode:        mode,
		Attachments: attachments,
	}
}

func attachmentFileName(sku string, v models.ColorVariant) string {
	name := fmt.Sprintf("%s-%s.%s", sku, v.ColorName, blob.FileExt(v.ImagePath))
	return whitespace.ReplaceAllString(name, "_")
}

// encodeComponent percent-encodes for a URL query component, using %20 for
// spaces so messaging apps render the text correctly.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
