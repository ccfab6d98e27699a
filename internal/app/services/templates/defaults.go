package templates

import (
	"github.com/KratoLib/promo_service/internal/app/domain/template"
)

// Defaults returns the built-in template catalog. It seeds an empty store
// and doubles as the fallback set when the store has no rows yet, so the
// editor is never left without a layout to offer.
func Defaults() []template.Template {
	return []template.Template{
		{
			ID:     "classic_story",
			Name:   "Classic Story",
			Format: template.FormatStory,
			Canvas: template.Canvas{Width: 1080, Height: 1920},
			Elements: []template.Element{
				{
					ID:           "cover",
					Type:         template.ElementImage,
					Source:       template.SourceCoverArt,
					Position:     template.Position{X: 240, Y: 420},
					Size:         &template.Size{Width: 600, Height: 600},
					CornerRadius: 24,
					Animation:    &template.Animation{Type: "zoom", Start: 0, Duration: 0.5},
				},
				{
					ID:        "artist",
					Type:      template.ElementText,
					Source:    template.SourceArtistName,
					Position:  template.Position{X: 540, Y: 1130},
					TextStyle: &template.TextStyle{Size: 56, Color: "#FFFFFF", Align: "center"},
					Animation: &template.Animation{Type: "fade", Start: 0.2, Duration: 0.6},
				},
				{
					ID:        "track",
					Type:      template.ElementText,
					Source:    template.SourceTrackName,
					Position:  template.Position{X: 540, Y: 1230},
					TextStyle: &template.TextStyle{Size: 72, Color: "#FFFFFF", Align: "center"},
					Animation: &template.Animation{Type: "slide", Start: 0.3, Duration: 0.6},
				},
				{
					ID:        "headline",
					Type:      template.ElementText,
					Source:    template.SourceCustomText,
					Position:  template.Position{X: 540, Y: 280},
					TextStyle: &template.TextStyle{Size: 48, Color: "#FFD700", Align: "center"},
				},
				{
					ID:       "logo",
					Type:     template.ElementImage,
					Source:   template.SourcePlatformLogo,
					Position: template.Position{X: 540, Y: 1620},
				},
			},
		},
		{
			ID:     "minimal_story",
			Name:   "Minimal Story",
			Format: template.FormatStory,
			Canvas: template.Canvas{Width: 1080, Height: 1920},
			Background: template.Background{
				ImageURL: "backgrounds/minimal-story.jpg",
			},
			Elements: []template.Element{
				{
					ID:           "cover",
					Type:         template.ElementImage,
					Source:       template.SourceCoverArt,
					Position:     template.Position{X: 290, Y: 560},
					Size:         &template.Size{Width: 500, Height: 500},
					CornerRadius: 12,
					SizeOptions: []template.SizeOption{
						{Name: "small", Width: 400, Height: 400},
						{Name: "large", Width: 640, Height: 640},
					},
				},
				{
					ID:        "track",
					Type:      template.ElementText,
					Source:    template.SourceTrackName,
					Position:  template.Position{X: 540, Y: 1180},
					TextStyle: &template.TextStyle{Size: 64, Color: "#111111", Align: "center"},
				},
				{
					ID:        "artist",
					Type:      template.ElementText,
					Source:    template.SourceArtistName,
					Position:  template.Position{X: 540, Y: 1280},
					TextStyle: &template.TextStyle{Size: 44, Color: "#333333", Align: "center"},
				},
				{
					ID:       "logo",
					Type:     template.ElementImage,
					Source:   template.SourcePlatformLogo,
					Position: template.Position{X: 540, Y: 1620},
					Allowed:  []string{"spotify", "apple-music", "youtube-music", "deezer", "tidal"},
				},
			},
		},
		{
			ID:     "classic_post",
			Name:   "Classic Post",
			Format: template.FormatPost,
			Canvas: template.Canvas{Width: 1080, Height: 1080},
			Elements: []template.Element{
				{
					ID:           "cover",
					Type:         template.ElementImage,
					Source:       template.SourceCoverArt,
					Position:     template.Position{X: 315, Y: 120},
					Size:         &template.Size{Width: 450, Height: 450},
					CornerRadius: 16,
				},
				{
					ID:        "track",
					Type:      template.ElementText,
					Source:    template.SourceTrackName,
					Position:  template.Position{X: 540, Y: 630},
					TextStyle: &template.TextStyle{Size: 60, Color: "#FFFFFF", Align: "center"},
				},
				{
					ID:        "artist",
					Type:      template.ElementText,
					Source:    template.SourceArtistName,
					Position:  template.Position{X: 540, Y: 710},
					TextStyle: &template.TextStyle{Size: 40, Color: "#DDDDDD", Align: "center"},
				},
				{
					ID:       "logo",
					Type:     template.ElementImage,
					Source:   template.SourcePlatformLogo,
					Position: template.Position{X: 540, Y: 780},
				},
			},
		},
		{
			ID:     "bold_post",
			Name:   "Bold Post",
			Format: template.FormatPost,
			Canvas: template.Canvas{Width: 1080, Height: 1080},
			Background: template.Background{
				ImageURL: "backgrounds/bold-post.jpg",
			},
			Elements: []template.Element{
				{
					ID:        "headline",
					Type:      template.ElementText,
					Source:    template.SourceCustomText,
					Position:  template.Position{X: 540, Y: 140},
					TextStyle: &template.TextStyle{Size: 88, Color: "#FF3366", Align: "center"},
					Animation: &template.Animation{Type: "zoom", Start: 0, Duration: 0.4},
				},
				{
					ID:           "cover",
					Type:         template.ElementImage,
					Source:       template.SourceCoverArt,
					Position:     template.Position{X: 340, Y: 260},
					Size:         &template.Size{Width: 400, Height: 400},
					CornerRadius: 200,
				},
				{
					ID:        "track",
					Type:      template.ElementText,
					Source:    template.SourceTrackName,
					Position:  template.Position{X: 540, Y: 740},
					TextStyle: &template.TextStyle{Size: 54, Color: "#FFFFFF", Align: "center"},
				},
				{
					ID:       "logo",
					Type:     template.ElementImage,
					Source:   template.SourcePlatformLogo,
					Position: template.Position{X: 540, Y: 780},
				},
			},
		},
	}
}
