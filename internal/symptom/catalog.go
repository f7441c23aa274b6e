package symptom

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is a named, ordered group of symptoms shown together in the
// checklist.
type Category struct {
	Name     string `yaml:"name" json:"name"`
	Symptoms []ID   `yaml:"symptoms" json:"symptoms"`
}

// Catalog is the ordered list of checklist categories. It defines the
// universe of IDs the UI offers; Selector does not enforce it.
type Catalog struct {
	Categories []Category `yaml:"categories" json:"categories"`
}

// DefaultCatalog returns the built-in checklist.
func DefaultCatalog() Catalog {
	return Catalog{Categories: []Category{
		{Name: "Fever Patterns", Symptoms: IDs(
			"high_fever", "biphasic_fever", "intermittent_fever", "continuous_fever",
		)},
		{Name: "Pain and Discomfort", Symptoms: IDs(
			"severe_headache", "retro_orbital_pain", "muscle_joint_pain",
			"abdominal_pain", "muscle_aches",
		)},
		{Name: "Respiratory Symptoms", Symptoms: IDs(
			"cough", "shortness_breath", "sore_throat", "rapid_breathing",
		)},
		{Name: "Sensory Changes", Symptoms: IDs(
			"loss_smell", "loss_taste",
		)},
		{Name: "Skin and Bleeding", Symptoms: IDs(
			"maculopapular_rash", "petechiae", "bleeding_gums",
			"nose_bleeds", "gi_bleeding",
		)},
		{Name: "Gastrointestinal", Symptoms: IDs(
			"persistent_vomiting", "nausea", "diarrhea", "constipation",
		)},
		{Name: "General Symptoms", Symptoms: IDs(
			"fatigue", "chills", "profuse_sweating", "weakness",
			"confusion", "restlessness",
		)},
		{Name: "Clinical Signs", Symptoms: IDs(
			"rose_spots", "jaundice", "splenomegaly", "cyanosis",
			"relative_bradycardia",
		)},
	}}
}

// LoadCatalog reads a YAML catalog from path. An empty path returns the
// built-in catalog.
func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(content)
}

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(content []byte) (Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(content, &cat); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

// Validate checks that the catalog is non-empty and every ID is unique
// and non-blank.
func (c Catalog) Validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("symptom catalog empty")
	}
	seen := make(map[ID]string)
	for _, cat := range c.Categories {
		if strings.TrimSpace(cat.Name) == "" {
			return fmt.Errorf("category with empty name")
		}
		if len(cat.Symptoms) == 0 {
			return fmt.Errorf("category %q has no symptoms", cat.Name)
		}
		for _, id := range cat.Symptoms {
			if strings.TrimSpace(string(id)) == "" {
				return fmt.Errorf("category %q has a blank symptom", cat.Name)
			}
			if prev, dup := seen[id]; dup {
				return fmt.Errorf("symptom %q listed in both %q and %q", id, prev, cat.Name)
			}
			seen[id] = cat.Name
		}
	}
	return nil
}

// Contains reports whether id appears in any category.
func (c Catalog) Contains(id ID) bool {
	for _, cat := range c.Categories {
		for _, s := range cat.Symptoms {
			if s == id {
				return true
			}
		}
	}
	return false
}

// All returns every ID in catalog order.
func (c Catalog) All() []ID {
	var out []ID
	for _, cat := range c.Categories {
		out = append(out, cat.Symptoms...)
	}
	return out
}
