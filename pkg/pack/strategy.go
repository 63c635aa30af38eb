package pack

import (
	"fmt"
	"strings"
)

// ContentStrategy selects the text written on each sticky note.
// The zero value is ContentEmpty.
type ContentStrategy int

const (
	ContentEmpty ContentStrategy = iota
	ContentPackIndex
	ContentStickyIndex
	ContentOverallIndex
	ContentOnlineUsersPerPack
	ContentOnlineUsersPerItem
	ContentCustom

	contentStrategyCount
)

var contentNames = [...]struct{ name, label string }{
	ContentEmpty:              {"empty", "Empty"},
	ContentPackIndex:          {"pack_index", "Pack index"},
	ContentStickyIndex:        {"sticky_index", "Sticky index"},
	ContentOverallIndex:       {"overall_index", "Overall index"},
	ContentOnlineUsersPerPack: {"online_users_per_pack", "Online users per pack"},
	ContentOnlineUsersPerItem: {"online_users_per_item", "Online users per item"},
	ContentCustom:             {"custom", "Custom"},
}

// ContentStrategies lists every content strategy in declaration order.
func ContentStrategies() []ContentStrategy {
	out := make([]ContentStrategy, 0, contentStrategyCount)
	for s := ContentEmpty; s < contentStrategyCount; s++ {
		out = append(out, s)
	}
	return out
}

// String returns the wire name, e.g. "pack_index".
func (s ContentStrategy) String() string {
	if s < 0 || s >= contentStrategyCount {
		return fmt.Sprintf("ContentStrategy(%d)", int(s))
	}
	return contentNames[s].name
}

// Label returns the human readable name shown in menus, e.g. "Pack index".
func (s ContentStrategy) Label() string {
	if s < 0 || s >= contentStrategyCount {
		return s.String()
	}
	return contentNames[s].label
}

// ParseContentStrategy accepts either the wire name or the label.
func ParseContentStrategy(v string) (ContentStrategy, error) {
	key := normalizeStrategy(v)
	for s := ContentEmpty; s < contentStrategyCount; s++ {
		if key == contentNames[s].name || key == normalizeStrategy(contentNames[s].label) {
			return s, nil
		}
	}
	return ContentEmpty, fmt.Errorf("unknown content strategy %q", v)
}

func (s ContentStrategy) MarshalText() ([]byte, error) {
	if s < 0 || s >= contentStrategyCount {
		return nil, fmt.Errorf("invalid content strategy %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *ContentStrategy) UnmarshalText(b []byte) error {
	v, err := ParseContentStrategy(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// TagStrategy selects which collaborator tag, if any, each sticky receives.
// The zero value is TagEmpty.
type TagStrategy int

const (
	TagEmpty TagStrategy = iota
	TagOnlineUsersPerPack
	TagOnlineUsersPerItem

	tagStrategyCount
)

var tagNames = [...]struct{ name, label string }{
	TagEmpty:              {"empty", "Empty"},
	TagOnlineUsersPerPack: {"online_users_per_pack", "Online users per pack"},
	TagOnlineUsersPerItem: {"online_users_per_item", "Online users per item"},
}

// TagStrategies lists every tag strategy in declaration order.
func TagStrategies() []TagStrategy {
	out := make([]TagStrategy, 0, tagStrategyCount)
	for s := TagEmpty; s < tagStrategyCount; s++ {
		out = append(out, s)
	}
	return out
}

func (s TagStrategy) String() string {
	if s < 0 || s >= tagStrategyCount {
		return fmt.Sprintf("TagStrategy(%d)", int(s))
	}
	return tagNames[s].name
}

func (s TagStrategy) Label() string {
	if s < 0 || s >= tagStrategyCount {
		return s.String()
	}
	return tagNames[s].label
}

// ParseTagStrategy accepts either the wire name or the label.
func ParseTagStrategy(v string) (TagStrategy, error) {
	key := normalizeStrategy(v)
	for s := TagEmpty; s < tagStrategyCount; s++ {
		if key == tagNames[s].name || key == normalizeStrategy(tagNames[s].label) {
			return s, nil
		}
	}
	return TagEmpty, fmt.Errorf("unknown tag strategy %q", v)
}

func (s TagStrategy) MarshalText() ([]byte, error) {
	if s < 0 || s >= tagStrategyCount {
		return nil, fmt.Errorf("invalid tag strategy %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *TagStrategy) UnmarshalText(b []byte) error {
	v, err := ParseTagStrategy(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// normalizeStrategy folds "Pack index", "pack-index" and "PACK_INDEX" together.
func normalizeStrategy(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(v)
}
