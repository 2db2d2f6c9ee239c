package seo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFAQPage(t *testing.T) {
	raw := JSON(FAQPage([]QA{{Question: "Best season?", Answer: "Spring & autumn."}}))
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	require.Equal(t, "FAQPage", got["@type"])
	entities := got["mainEntity"].([]any)
	require.Len(t, entities, 1)
	q := entities[0].(map[string]any)
	require.Equal(t, "Best season?", q["name"])
	require.Equal(t, "Spring & autumn.", q["acceptedAnswer"].(map[string]any)["text"])
}

func TestBreadcrumbPositions(t *testing.T) {
	bl := BreadcrumbList([]BreadcrumbItem{{Name: "Home", Item: "https://x/"}, {Name: "Blog", Item: "https://x/blog"}})
	el := bl["itemListElement"].([]map[string]any)
	require.Equal(t, 1, el[0]["position"])
	require.Equal(t, 2, el[1]["position"])
}

func TestMetaDefaults(t *testing.T) {
	m := Meta{Title: "FAQ", Description: "Answers", Canonical: "https://x/faq"}.Defaults("HikeHigh Nepal", "@hikehighnepal")
	require.Equal(t, "FAQ", m.OG.Title)
	require.Equal(t, "https://x/faq", m.OG.URL)
	require.Equal(t, "website", m.OG.Type)
	require.Equal(t, "summary_large_image", m.Twitter.Card)
	require.Equal(t, "index,follow", m.Robots)
}

func TestAbsoluteURL(t *testing.T) {
	require.Equal(t, "https://x/blog", AbsoluteURL("https://x/", "/blog"))
	require.Equal(t, "https://x/a.png", AbsoluteURL("https://x", "a.png"))
	require.Equal(t, "https://cdn/a.png", AbsoluteURL("https://x", "https://cdn/a.png"))
	require.Empty(t, AbsoluteURL("https://x", ""))
}
