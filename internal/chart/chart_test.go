package chart

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/AniruddhGohil/serp-checker/internal/models"
)

func TestColorFor(t *testing.T) {
	tests := []struct {
		change models.Change
		want   any
	}{
		{models.ChangeImproved, colorImproved},
		{models.ChangeDropped, colorDropped},
		{models.ChangeNone, colorNone},
		{models.ChangeNew, colorNew},
		{"", colorNone},
	}

	for _, tt := range tests {
		t.Run(string(tt.change), func(t *testing.T) {
			if got := ColorFor(tt.change); got != tt.want {
				t.Errorf("ColorFor(%q) = %v, want %v", tt.change, got, tt.want)
			}
		})
	}
}

func TestSortForChart(t *testing.T) {
	in := []models.KeywordResult{
		{Keyword: "a", Rank: 3},
		{Keyword: "b", Rank: 0},
		{Keyword: "c", Rank: 15},
		{Keyword: "d", Rank: 3},
	}

	got := SortForChart(in)

	want := []string{"c", "a", "d", "b"}
	for i, kw := range want {
		if got[i].Keyword != kw {
			t.Errorf("position %d = %q, want %q", i, got[i].Keyword, kw)
		}
	}
	if in[0].Keyword != "a" {
		t.Error("SortForChart modified its input")
	}
}

func TestRender(t *testing.T) {
	results := []models.KeywordResult{
		{Keyword: "seo tools", Rank: 3, Change: models.ChangeImproved},
		{Keyword: "rank tracker", Rank: 12, Change: models.ChangeDropped},
		{Keyword: "serp api", Rank: 0, Change: models.ChangeNew},
		{Keyword: "broken", Error: "timeout"},
	}

	png, err := Render(results)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("Render() output is not a PNG")
	}
}

func TestRender_SingleResult(t *testing.T) {
	png, err := Render([]models.KeywordResult{{Keyword: "only", Rank: 1, Change: models.ChangeNone}})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(png) == 0 {
		t.Error("Render() returned no bytes")
	}
}

func TestRender_Empty(t *testing.T) {
	if _, err := Render(nil); !errors.Is(err, ErrNoData) {
		t.Errorf("Render(nil) error = %v, want ErrNoData", err)
	}
}

func TestDataURI(t *testing.T) {
	uri := DataURI([]byte("abc"))
	if !strings.HasPrefix(uri, "data:image/png;base64,") || !strings.HasSuffix(uri, "YWJj") {
		t.Errorf("DataURI() = %q", uri)
	}
}
