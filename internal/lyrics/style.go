package lyrics

// Animation hints the renderer how an entry should appear and vanish.
type Animation string

const (
	AnimationFade  Animation = "fade"
	AnimationSlide Animation = "slide"
	AnimationNone  Animation = "none"
)

// Style holds the visual parameters of a lyric track. It is a plain
// value passed through to the renderer; lookup and layout logic never
// interpret it beyond the font size.
type Style struct {
	FontSize       int
	FontColor      string
	HighlightColor string
	GlowEnabled    bool
	Animation      Animation
}

// DefaultStyle returns large white text with a gold highlight and fade
// transitions.
func DefaultStyle() Style {
	return Style{
		FontSize:       80,
		FontColor:      "white",
		HighlightColor: "#FFD700",
		GlowEnabled:    false,
		Animation:      AnimationFade,
	}
}
