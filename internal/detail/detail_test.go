package detail

import (
	"strings"
	"testing"

	"github.com/Werneck0live/shukatsu-tracker/internal/models"
)

func find(v View, label string) (Item, bool) {
	for _, s := range v.Sections {
		for _, it := range s.Items {
			if it.Label == label {
				return it, true
			}
		}
	}
	return Item{}, false
}

func TestBuild_OmitsAbsentFields(t *testing.T) {
	v := Build(models.Company{ID: 1, CompanyName: "Acme", Status: models.StatusEntered, Priority: 3})

	for _, label := range []string{"業界", "職種", "企業サイト", "パスワード", "メモ", "次回面接"} {
		if _, ok := find(v, label); ok {
			t.Fatalf("%s should be omitted", label)
		}
	}
	for _, s := range v.Sections {
		if s.Title == "リンク" || s.Title == "マイページ" || s.Title == "メモ" {
			t.Fatalf("empty section %q rendered", s.Title)
		}
	}
	if it, ok := find(v, "ES提出"); !ok || it.Value != "未提出" {
		t.Fatalf("es_submitted item=%+v ok=%v", it, ok)
	}
}

func TestBuild_PasswordMaskFixedWidth(t *testing.T) {
	for _, pw := range []string{"a", "a-much-longer-password-123"} {
		v := Build(models.Company{CompanyName: "x", Priority: 3, MypagePassword: models.Ptr(pw)})
		it, ok := find(v, "パスワード")
		if !ok {
			t.Fatal("password item missing")
		}
		if it.Value != PasswordMask || it.Kind != KindSecret {
			t.Fatalf("item=%+v", it)
		}
		if strings.Contains(it.Value, pw) {
			t.Fatal("secret leaked")
		}
	}
}

func TestBuild_LinksAndStars(t *testing.T) {
	v := Build(models.Company{
		CompanyName: "x",
		Priority:    1,
		WebsiteURL:  models.Ptr("https://example.co.jp"),
		Industry:    models.Ptr("  "),
	})
	it, ok := find(v, "企業サイト")
	if !ok || it.Kind != KindLink || it.Value != "https://example.co.jp" {
		t.Fatalf("link item=%+v ok=%v", it, ok)
	}
	if _, ok := find(v, "業界"); ok {
		t.Fatal("blank industry should be omitted")
	}
	if v.Stars != "★★★★★" {
		t.Fatalf("stars=%q", v.Stars)
	}
}

func TestStars(t *testing.T) {
	tests := []struct {
		priority int
		want     string
	}{
		{1, "★★★★★"},
		{3, "★★★"},
		{5, "★"},
		{0, "★★★★★"},
		{9, "★"},
	}
	for _, tt := range tests {
		if got := Stars(tt.priority); got != tt.want {
			t.Fatalf("Stars(%d)=%q want=%q", tt.priority, got, tt.want)
		}
	}
}
