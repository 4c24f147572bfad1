package domain

// ReactionKind is one of the fixed reactions a reader can leave on a post.
type ReactionKind string

const (
	ThumbsUp ReactionKind = "thumbsUp"
	Wow      ReactionKind = "wow"
	Heart    ReactionKind = "heart"
	Rocket   ReactionKind = "rocket"
	Coffee   ReactionKind = "coffee"
)

// ReactionKinds lists every kind in display order.
var ReactionKinds = []ReactionKind{ThumbsUp, Wow, Heart, Rocket, Coffee}

var reactionEmoji = map[ReactionKind]string{
	ThumbsUp: "👍",
	Wow:      "😮",
	Heart:    "❤️",
	Rocket:   "🚀",
	Coffee:   "☕",
}

// Emoji returns the glyph shown for the kind.
func (k ReactionKind) Emoji() string { return reactionEmoji[k] }

// ParseReactionKind validates a reaction name.
func ParseReactionKind(s string) (ReactionKind, error) {
	k := ReactionKind(s)
	if _, ok := reactionEmoji[k]; !ok {
		return "", ErrUnknownReaction
	}
	return k, nil
}

// Reactions holds the non-negative count for every kind.
// The zero value is the all-zero map new posts start with.
type Reactions struct {
	ThumbsUp int `json:"thumbsUp"`
	Wow      int `json:"wow"`
	Heart    int `json:"heart"`
	Rocket   int `json:"rocket"`
	Coffee   int `json:"coffee"`
}

// Get returns the count for kind, or 0 for an unknown kind.
func (r Reactions) Get(kind ReactionKind) int {
	if p := r.field(kind); p != nil {
		return *p
	}
	return 0
}

// Inc bumps the counter for kind. It returns ErrUnknownReaction for
// anything outside the fixed set.
func (r *Reactions) Inc(kind ReactionKind) error {
	p := r.field(kind)
	if p == nil {
		return ErrUnknownReaction
	}
	*p++
	return nil
}

// Total sums all counters.
func (r Reactions) Total() int {
	return r.ThumbsUp + r.Wow + r.Heart + r.Rocket + r.Coffee
}

func (r *Reactions) field(kind ReactionKind) *int {
	switch kind {
	case ThumbsUp:
		return &r.ThumbsUp
	case Wow:
		return &r.Wow
	case Heart:
		return &r.Heart
	case Rocket:
		return &r.Rocket
	case Coffee:
		return &r.Coffee
	}
	return nil
}
