package knowledge

import (
	"fmt"
	"strings"

	"gramhealth-go/internal/model"
)

// Resolved is a disease ready for display in one language.
// Display fields follow the collapsing rule; the English fields feed the report.
type Resolved struct {
	Class           string         `json:"class"`
	Language        model.Language `json:"language"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	FirstAid        []string       `json:"firstAid"`
	WhenToSeeDoctor string         `json:"whenToSeeDoctor"`

	TitleEN           string   `json:"-"`
	FirstAidEN        []string `json:"-"`
	WhenToSeeDoctorEN string   `json:"-"`
}

// Collapse combines a localized value with its English original.
// Equal values after trimming, or a missing side, yield a single value;
// otherwise the result is "local (english)".
func Collapse(local, english string) string {
	l, e := strings.TrimSpace(local), strings.TrimSpace(english)
	switch {
	case e == "" || l == e:
		return local
	case l == "":
		return english
	default:
		return local + " (" + english + ")"
	}
}

// Resolve looks up class and renders it for lang.
// It returns an error wrapping ErrNotFound when the class has no entry.
func (b *Base) Resolve(class string, lang model.Language) (Resolved, error) {
	rec, ok := b.records[class]
	if !ok {
		return Resolved{}, fmt.Errorf("%w for %s", ErrNotFound, class)
	}

	titleEN := rec.Title.EN
	if titleEN == "" {
		titleEN = class
	}
	titleLocal := rec.Title.Get(lang)
	if titleLocal == "" {
		titleLocal = titleEN
	}

	firstAidLocal := rec.FirstAid.Get(lang)
	firstAid := make([]string, len(firstAidLocal))
	for i, item := range firstAidLocal {
		if i < len(rec.FirstAid.EN) {
			firstAid[i] = Collapse(item, rec.FirstAid.EN[i])
		} else {
			firstAid[i] = item
		}
	}

	return Resolved{
		Class:             class,
		Language:          lang,
		Title:             Collapse(titleLocal, titleEN),
		Description:       Collapse(rec.Description.Get(lang), rec.Description.EN),
		FirstAid:          firstAid,
		WhenToSeeDoctor:   Collapse(rec.WhenToSeeDoctor.Get(lang), rec.WhenToSeeDoctor.EN),
		TitleEN:           titleEN,
		FirstAidEN:        append([]string(nil), rec.FirstAid.EN...),
		WhenToSeeDoctorEN: rec.WhenToSeeDoctor.EN,
	}, nil
}

// DisplayTitle returns the collapsed title for class, or the raw class name
// when the class has no entry.
func (b *Base) DisplayTitle(class string, lang model.Language) (string, bool) {
	r, err := b.Resolve(class, lang)
	if err != nil {
		return class, false
	}
	return r.Title, true
}
