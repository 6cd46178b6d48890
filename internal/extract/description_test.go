package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescription(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "meta description tag",
			html: `<head><meta name="description" content="A community doge coin."></head>`,
			want: "A community doge coin.",
		},
		{
			name: "open graph fallback",
			html: `<head><meta property="og:description" content="Launchpad token page"></head>`,
			want: "Launchpad token page",
		},
		{
			name: "meta tag wins over open graph",
			html: `<meta property="og:description" content="og text"><meta name="description" content="meta text">`,
			want: "meta text",
		},
		{
			name: "description label fallback",
			html: `<div>Description: The best coin on the chain. <a href="#">more</a></div>`,
			want: "The best coin on the chain.",
		},
		{
			name: "html entities unescaped",
			html: `<meta name="description" content="Fast &amp; fair launch">`,
			want: "Fast & fair launch",
		},
		{
			name: "nothing found",
			html: `<html><body><h1>hello</h1></body></html>`,
			want: "",
		},
		{
			name: "empty input",
			html: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Description(tt.html))
		})
	}
}
