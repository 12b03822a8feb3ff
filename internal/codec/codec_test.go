package codec

import (
	"testing"

	"github.com/lvsiyuan/personal-site/internal/model"
)

func TestSplitList(t *testing.T) {
	got := SplitList("Go,SQLite,chi")
	want := []string{"Go", "SQLite", "chi"}
	if len(got) != len(want) {
		t.Fatalf("SplitList() returned %d items, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SplitList()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitList_Empty(t *testing.T) {
	got := SplitList("")
	if got == nil {
		t.Fatal("SplitList(\"\") returned nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("SplitList(\"\") = %v, want empty slice", got)
	}
}

func TestJoinList_RoundTrip(t *testing.T) {
	cases := []string{
		"Go,SQLite,chi",
		"single",
		"",
	}
	for _, stored := range cases {
		if got := JoinList(SplitList(stored)); got != stored {
			t.Errorf("JoinList(SplitList(%q)) = %q, want %q", stored, got, stored)
		}
	}
}

func TestJoinList_Nil(t *testing.T) {
	if got := JoinList(nil); got != "" {
		t.Errorf("JoinList(nil) = %q, want empty string", got)
	}
}

func TestEncodeLinks_RoundTrip(t *testing.T) {
	links := []model.WorkLink{
		{URL: "https://example.com", Name: "demo", Icon: "link"},
		{URL: "https://github.com/x/y", Name: "source", Icon: "github"},
	}

	stored, err := EncodeLinks(links)
	if err != nil {
		t.Fatalf("EncodeLinks() error = %v", err)
	}

	decoded, err := DecodeLinks(stored)
	if err != nil {
		t.Fatalf("DecodeLinks() error = %v", err)
	}
	if len(decoded) != len(links) {
		t.Fatalf("decoded %d links, want %d", len(decoded), len(links))
	}
	for i := range links {
		if decoded[i] != links[i] {
			t.Errorf("link[%d] = %+v, want %+v", i, decoded[i], links[i])
		}
	}
}

func TestEncodeLinks_Nil(t *testing.T) {
	stored, err := EncodeLinks(nil)
	if err != nil {
		t.Fatalf("EncodeLinks(nil) error = %v", err)
	}
	if stored != "[]" {
		t.Errorf("EncodeLinks(nil) = %q, want %q", stored, "[]")
	}
}

func TestDecodeLinks_Empty(t *testing.T) {
	links, err := DecodeLinks("")
	if err != nil {
		t.Fatalf("DecodeLinks(\"\") error = %v", err)
	}
	if links == nil || len(links) != 0 {
		t.Errorf("DecodeLinks(\"\") = %v, want empty slice", links)
	}
}

func TestDecodeLinks_JSONNull(t *testing.T) {
	links, err := DecodeLinks("null")
	if err != nil {
		t.Fatalf("DecodeLinks(\"null\") error = %v", err)
	}
	if links == nil || len(links) != 0 {
		t.Errorf("DecodeLinks(\"null\") = %v, want empty slice", links)
	}
}

func TestDecodeLinks_Malformed(t *testing.T) {
	_, err := DecodeLinks("{not json")
	if err == nil {
		t.Fatal("DecodeLinks() should error on malformed JSON")
	}
}
