package pack

import (
	"strconv"
	"strings"
)

// OnlineUser is a collaborator currently present on the board.
type OnlineUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GenerationContext carries the per-sticky values available to content
// and tag generation. Indices are 1-based. OverallIndex is the product
// PackIndex*StickyIndex, so it repeats across cells (pack 2 sticky 3 and
// pack 3 sticky 2 both yield 6).
type GenerationContext struct {
	PackIndex    int
	StickyIndex  int
	OverallIndex int
	OnlineUsers  []OnlineUser
}

// NewGenerationContext builds the context for the cell at 0-based
// (packIndex, stickyIndex).
func NewGenerationContext(packIndex, stickyIndex int, users []OnlineUser) GenerationContext {
	return GenerationContext{
		PackIndex:    packIndex + 1,
		StickyIndex:  stickyIndex + 1,
		OverallIndex: (packIndex + 1) * (stickyIndex + 1),
		OnlineUsers:  users,
	}
}

// SelectUser returns the collaborator assigned to a 1-based slot, cycling
// through users when index exceeds the list. It returns nil for an empty
// list. index must be at least 1.
func SelectUser(users []OnlineUser, index int) *OnlineUser {
	if len(users) == 0 {
		return nil
	}
	i := index - 1
	if i >= len(users) {
		i %= len(users)
	}
	if i < 0 {
		return nil
	}
	return &users[i]
}

// BuildContent renders the text of one sticky note.
func BuildContent(strategy ContentStrategy, template string, gc GenerationContext) string {
	switch strategy {
	case ContentEmpty:
		return ""
	case ContentPackIndex:
		return strconv.Itoa(gc.PackIndex)
	case ContentStickyIndex:
		return strconv.Itoa(gc.StickyIndex)
	case ContentOverallIndex:
		return strconv.Itoa(gc.OverallIndex)
	case ContentOnlineUsersPerPack:
		return userName(SelectUser(gc.OnlineUsers, gc.PackIndex))
	case ContentOnlineUsersPerItem:
		return userName(SelectUser(gc.OnlineUsers, gc.StickyIndex))
	case ContentCustom:
		return expandTemplate(template, gc)
	}
	return ""
}

// expandTemplate replaces the #{key} placeholders known to a context.
// Unknown placeholders stay as written.
func expandTemplate(template string, gc GenerationContext) string {
	if !strings.Contains(template, "#{") {
		return template
	}
	names := make([]string, len(gc.OnlineUsers))
	for i, u := range gc.OnlineUsers {
		names[i] = u.Name
	}
	r := strings.NewReplacer(
		"#{packIndex}", strconv.Itoa(gc.PackIndex),
		"#{stickyIndex}", strconv.Itoa(gc.StickyIndex),
		"#{overallIndex}", strconv.Itoa(gc.OverallIndex),
		"#{onlineUsers}", strings.Join(names, ","),
	)
	return r.Replace(template)
}

func userName(u *OnlineUser) string {
	if u == nil {
		return ""
	}
	return u.Name
}
