package recipe

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"plan-my-meal/internal/llm"
)

type mockTextGenerator struct {
	response string
	err      error
	prompts  []string
}

func (m *mockTextGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return llm.ContentResponse{}, m.err
	}
	return llm.ContentResponse{Content: m.response}, nil
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock := &mockTextGenerator{response: "1. Boil water\n2. Add oats"}
		text, meta, err := Generate(ctx, mock, "Oatmeal")
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if text != "1. Boil water\n2. Add oats" {
			t.Errorf("Expected verbatim model output, got %q", text)
		}
		if meta.Operation != "recipe" {
			t.Errorf("Expected operation 'recipe', got '%s'", meta.Operation)
		}
		if !strings.Contains(mock.prompts[0], `"Oatmeal"`) {
			t.Errorf("Prompt must name the dish:\n%s", mock.prompts[0])
		}
	})

	t.Run("TransportError", func(t *testing.T) {
		mock := &mockTextGenerator{err: fmt.Errorf("network down")}
		if _, _, err := Generate(ctx, mock, "Oatmeal"); err == nil {
			t.Fatal("Expected an error, got nil")
		}
	})

	t.Run("EmptyResponse", func(t *testing.T) {
		mock := &mockTextGenerator{response: ""}
		if _, _, err := Generate(ctx, mock, "Oatmeal"); err == nil {
			t.Fatal("Expected an error for empty response, got nil")
		}
	})
}

func TestImportFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><style>p{}</style></head><body>
<script>tracker()</script>
<nav>Home</nav>
<p>Pasta with tomatoes. Boil pasta, add sauce.</p>
<footer>About us</footer>
</body></html>`)
	}))
	defer srv.Close()

	mock := &mockTextGenerator{response: "Ingredients: pasta, tomatoes\n1. Boil pasta"}
	importer := NewImporter(mock)

	text, _, err := importer.ImportFromURL(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("ImportFromURL failed: %v", err)
	}
	if text != "Ingredients: pasta, tomatoes\n1. Boil pasta" {
		t.Errorf("Expected model output, got %q", text)
	}

	prompt := mock.prompts[0]
	if !strings.Contains(prompt, "Pasta with tomatoes") {
		t.Errorf("Prompt missing page text:\n%s", prompt)
	}
	if strings.Contains(prompt, "tracker()") || strings.Contains(prompt, "About us") {
		t.Errorf("Prompt must not contain stripped noise:\n%s", prompt)
	}
}

func TestImportFromURLBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	importer := NewImporter(&mockTextGenerator{})
	if _, _, err := importer.ImportFromURL(context.Background(), srv.URL); err == nil {
		t.Fatal("Expected an error for non-200 status, got nil")
	}
}
