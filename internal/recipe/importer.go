package recipe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"plan-my-meal/internal/llm"
	"plan-my-meal/internal/shared"

	"github.com/PuerkitoBio/goquery"
)

// Importer fetches a recipe web page and has the text model rewrite it as
// step-by-step instructions suitable for a meal's recipe field.
type Importer struct {
	textGen    llm.TextGenerator
	httpClient *http.Client
}

// NewImporter creates an Importer backed by the given text model.
func NewImporter(textGen llm.TextGenerator) *Importer {
	return &Importer{
		textGen: textGen,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ImportFromURL fetches the page, strips markup noise and asks the model
// for a clean recipe text.
func (im *Importer) ImportFromURL(ctx context.Context, url string) (string, shared.CallMeta, error) {
	content, err := im.fetchAndCleanHTML(ctx, url)
	if err != nil {
		return "", shared.CallMeta{}, fmt.Errorf("failed to fetch content: %w", err)
	}

	prompt := fmt.Sprintf(`The following is the text content of a recipe web page.
Rewrite it as a clean recipe: list the ingredients with quantities, the cooking time, and numbered step-by-step instructions. Respond with plain text only.

Page content:
%s
`, content)

	start := time.Now()
	resp, err := im.textGen.GenerateContent(ctx, prompt)
	meta := shared.CallMeta{
		Operation: "import-recipe",
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	}
	if err != nil {
		return "", meta, fmt.Errorf("failed to rewrite recipe: %w", err)
	}

	return resp.Content, meta, nil
}

func (im *Importer) fetchAndCleanHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := im.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save model tokens.
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return doc.Find("body").Text(), nil
}
