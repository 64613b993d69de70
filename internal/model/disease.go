package model

import "encoding/json"

// Localized is a text value with one slot per supported language.
// English is always the fallback.
type Localized struct {
	EN string
	TA string
}

// Get returns the value for lang, falling back to English when it is empty.
func (l Localized) Get(lang Language) string {
	if lang == Tamil && l.TA != "" {
		return l.TA
	}
	return l.EN
}

// LocalizedList is a list value with one slot per supported language.
type LocalizedList struct {
	EN []string
	TA []string
}

// Get returns the list for lang, falling back to English when it is empty.
func (l LocalizedList) Get(lang Language) []string {
	if lang == Tamil && len(l.TA) > 0 {
		return l.TA
	}
	return l.EN
}

// DiseaseRecord is one knowledge-base entry, keyed by disease class name.
type DiseaseRecord struct {
	Class           string
	Title           Localized
	Description     Localized
	FirstAid        LocalizedList
	WhenToSeeDoctor Localized
}

// diseaseRecordJSON is the on-disk layout: one flat key per field and language.
type diseaseRecordJSON struct {
	TitleEN           string   `json:"title_en"`
	TitleTA           string   `json:"title_ta,omitempty"`
	DescriptionEN     string   `json:"description_en"`
	DescriptionTA     string   `json:"description_ta,omitempty"`
	FirstAidEN        []string `json:"first_aid_en"`
	FirstAidTA        []string `json:"first_aid_ta,omitempty"`
	WhenToSeeDoctorEN string   `json:"when_to_see_doctor_en"`
	WhenToSeeDoctorTA string   `json:"when_to_see_doctor_ta,omitempty"`
}

// UnmarshalJSON decodes the flat knowledge-base layout.
// Class is not part of the document; the loader fills it from the map key.
func (d *DiseaseRecord) UnmarshalJSON(data []byte) error {
	var raw diseaseRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Title = Localized{EN: raw.TitleEN, TA: raw.TitleTA}
	d.Description = Localized{EN: raw.DescriptionEN, TA: raw.DescriptionTA}
	d.FirstAid = LocalizedList{EN: raw.FirstAidEN, TA: raw.FirstAidTA}
	d.WhenToSeeDoctor = Localized{EN: raw.WhenToSeeDoctorEN, TA: raw.WhenToSeeDoctorTA}
	return nil
}

// MarshalJSON encodes the record back into the flat layout.
func (d DiseaseRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(diseaseRecordJSON{
		TitleEN:           d.Title.EN,
		TitleTA:           d.Title.TA,
		DescriptionEN:     d.Description.EN,
		DescriptionTA:     d.Description.TA,
		FirstAidEN:        d.FirstAid.EN,
		FirstAidTA:        d.FirstAid.TA,
		WhenToSeeDoctorEN: d.WhenToSeeDoctor.EN,
		WhenToSeeDoctorTA: d.WhenToSeeDoctor.TA,
	})
}
