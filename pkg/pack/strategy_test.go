package pack

import (
	"encoding/json"
	"testing"
)

func TestParseContentStrategy(t *testing.T) {
	tests := []struct {
		in   string
		want ContentStrategy
	}{
		{"empty", ContentEmpty},
		{"pack_index", ContentPackIndex},
		{"Pack index", ContentPackIndex},
		{"sticky-index", ContentStickyIndex},
		{"OVERALL_INDEX", ContentOverallIndex},
		{"Online users per pack", ContentOnlineUsersPerPack},
		{"online_users_per_item", ContentOnlineUsersPerItem},
		{"Custom", ContentCustom},
	}
	for _, tt := range tests {
		got, err := ParseContentStrategy(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseContentStrategy(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseContentStrategy("random"); err == nil {
		t.Error("ParseContentStrategy(random) should fail")
	}
}

func TestParseTagStrategy(t *testing.T) {
	for _, s := range TagStrategies() {
		for _, in := range []string{s.String(), s.Label()} {
			got, err := ParseTagStrategy(in)
			if err != nil || got != s {
				t.Errorf("ParseTagStrategy(%q) = %v, %v; want %v", in, got, err, s)
			}
		}
	}
	if _, err := ParseTagStrategy("everyone"); err == nil {
		t.Error("ParseTagStrategy(everyone) should fail")
	}
}

func TestStrategyLists(t *testing.T) {
	if n := len(ContentStrategies()); n != 7 {
		t.Errorf("len(ContentStrategies()) = %d, want 7", n)
	}
	if n := len(TagStrategies()); n != 3 {
		t.Errorf("len(TagStrategies()) = %d, want 3", n)
	}
}

func TestStrategyJSON(t *testing.T) {
	type doc struct {
		Content ContentStrategy `json:"content"`
		Tag     TagStrategy     `json:"tag"`
	}
	data, err := json.Marshal(doc{ContentOnlineUsersPerItem, TagOnlineUsersPerPack})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"content":"online_users_per_item","tag":"online_users_per_pack"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var got doc
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Content != ContentOnlineUsersPerItem || got.Tag != TagOnlineUsersPerPack {
		t.Errorf("Unmarshal = %+v", got)
	}

	if _, err := json.Marshal(doc{Content: ContentStrategy(42)}); err == nil {
		t.Error("Marshal should reject an out-of-range strategy")
	}
}
