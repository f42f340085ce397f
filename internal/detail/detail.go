// Package detail monta a visão de leitura de uma company.
package detail

import (
	"strconv"
	"strings"
	"time"

	"github.com/Werneck0live/shukatsu-tracker/internal/models"
)

// PasswordMask tem largura fixa para não revelar o tamanho da senha.
const PasswordMask = "••••••••"

type Kind int

const (
	KindText Kind = iota
	KindLink
	KindStars
	KindSecret
	KindMultiline
)

type Item struct {
	Label string
	Value string
	Kind  Kind
}

type Section struct {
	Title string
	Items []Item
}

type View struct {
	ID      int64
	Name    string
	Status  models.Status
	Stars   string
	Created string
	Updated string

	Sections []Section
}

// Build omite campos ausentes e seções vazias.
func Build(c models.Company) View {
	v := View{
		ID:      c.ID,
		Name:    c.CompanyName,
		Status:  c.Status,
		Stars:   Stars(c.Priority),
		Created: formatTime(c.CreatedAt),
		Updated: formatTime(c.UpdatedAt),
	}

	basic := Section{Title: "基本情報"}
	basic.add("業界", c.Industry, KindText)
	basic.add("職種", c.JobType, KindText)
	basic.add("勤務地", c.Location, KindText)
	basic.add("給与", c.Salary, KindText)
	basic.Items = append(basic.Items, Item{Label: "優先度", Value: v.Stars, Kind: KindStars})

	sel := Section{Title: "選考状況"}
	sel.Items = append(sel.Items, Item{Label: "ステータス", Value: string(c.Status)})
	sel.add("ES締切", c.ESDeadline, KindText)
	sel.Items = append(sel.Items,
		Item{Label: "ES提出", Value: yesNo(c.ESSubmitted)},
		Item{Label: "面接回数", Value: strconv.Itoa(c.InterviewCount) + "回"},
	)
	if c.NextInterviewDate != nil {
		sel.Items = append(sel.Items, Item{Label: "次回面接", Value: formatTime(*c.NextInterviewDate)})
	}

	links := Section{Title: "リンク"}
	links.add("企業サイト", c.WebsiteURL, KindLink)
	links.add("採用ページ", c.RecruitURL, KindLink)

	mypage := Section{Title: "マイページ"}
	mypage.add("ID", c.MypageID, KindText)
	if present(c.MypagePassword) {
		mypage.Items = append(mypage.Items, Item{Label: "パスワード", Value: PasswordMask, Kind: KindSecret})
	}

	notes := Section{Title: "メモ"}
	notes.add("メモ", c.Notes, KindMultiline)
	notes.add("面接メモ", c.InterviewNotes, KindMultiline)

	for _, s := range []Section{basic, sel, links, mypage, notes} {
		if len(s.Items) > 0 {
			v.Sections = append(v.Sections, s)
		}
	}
	return v
}

func (s *Section) add(label string, p *string, kind Kind) {
	if !present(p) {
		return
	}
	s.Items = append(s.Items, Item{Label: label, Value: *p, Kind: kind})
}

func present(p *string) bool {
	return p != nil && strings.TrimSpace(*p) != ""
}

// Stars: prioridade 1 = ★★★★★, 5 = ★.
func Stars(priority int) string {
	return strings.Repeat("★", models.Stars(priority))
}

func yesNo(b bool) string {
	if b {
		return "提出済み"
	}
	return "未提出"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006/01/02 15:04")
}
