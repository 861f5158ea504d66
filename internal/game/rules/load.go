package rules

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/rq3/internal/game/character"
)

//go:embed data/*.yaml
var embedded embed.FS

type armorFile struct {
	ArmorTypes []*ArmorType  `yaml:"armor_types" validate:"required,dive"`
	Shields    []*ShieldSize `yaml:"shields" validate:"dive"`
}

type coverageFile struct {
	Weights       map[character.Location]float64   `yaml:"weights" validate:"len=7,dive,keys,location,endkeys,gt=0,lte=1"`
	Tags          map[string][]character.Location `yaml:"tags" validate:"required,dive,dive,location"`
	SlotTags      map[string][]character.Location `yaml:"slot_tags" validate:"dive,min=1,dive,location"`
	EquipAnywhere []string                        `yaml:"equip_anywhere"`
}

type skillsFile struct {
	Categories []string `yaml:"categories" validate:"required,dive,required"`
	Skills     []*Skill `yaml:"skills" validate:"required,dive"`
}

type speciesFile struct {
	Species []*character.Species `yaml:"species" validate:"dive"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("stat", validateStat)
		_ = v.RegisterValidation("location", validateLocation)
		validate = v
	})
	return validate
}

func validateStat(fl validator.FieldLevel) bool {
	_, ok := character.ParseStat(fl.Field().String())
	return ok
}

func validateLocation(fl validator.FieldLevel) bool {
	return character.ValidLocation(character.Location(fl.Field().String()))
}

// Check validates v against its struct tags and returns one error per violated
// field. The "stat" and "location" tags are available in addition to the builtins.
//
// Postcondition: Returns nil iff v is well-formed.
func Check(v any) []error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []error{err}
	}
	out := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			out = append(out, fmt.Errorf("%s: failed %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
		} else {
			out = append(out, fmt.Errorf("%s: failed %s (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
	}
	return out
}

var (
	defaultOnce sync.Once
	defaultSet  *Ruleset
	defaultErr  error
)

// Default returns the ruleset built from the embedded tables.
//
// Postcondition: Returns the same *Ruleset on every call, or the load error.
func Default() (*Ruleset, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embedded, "data")
		if err != nil {
			defaultErr = err
			return
		}
		defaultSet, defaultErr = Load(sub)
	})
	return defaultSet, defaultErr
}

// LoadDir reads armor.yaml, coverage.yaml, skills.yaml and species.yaml from dir.
//
// Precondition: dir must be a readable directory.
func LoadDir(dir string) (*Ruleset, error) {
	return Load(os.DirFS(dir))
}

// Load parses and validates the four rule tables found at the root of fsys.
//
// Postcondition: Returns a fully validated *Ruleset, or an error listing every problem found.
func Load(fsys fs.FS) (*Ruleset, error) {
	var (
		af armorFile
		cf coverageFile
		kf skillsFile
		sf speciesFile
	)
	for name, dst := range map[string]any{
		"armor.yaml":    &af,
		"coverage.yaml": &cf,
		"skills.yaml":   &kf,
		"species.yaml":  &sf,
	} {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("rules: cannot read %q: %w", name, err)
		}
		if err := yaml.Unmarshal(data, dst); err != nil {
			return nil, fmt.Errorf("rules: cannot parse %q: %w", name, err)
		}
	}

	var errs []error
	for _, v := range []any{&af, &cf, &kf, &sf} {
		errs = append(errs, Check(v)...)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("rules validation failed: %w", errors.Join(errs...))
	}

	rs, errs := build(af, cf, kf, sf)
	if len(errs) > 0 {
		return nil, fmt.Errorf("rules validation failed: %w", errors.Join(errs...))
	}
	return rs, nil
}

// build indexes the parsed tables and runs the cross-table checks.
func build(af armorFile, cf coverageFile, kf skillsFile, sf speciesFile) (*Ruleset, []error) {
	var errs []error
	rs := &Ruleset{
		armor:       make(map[string]*ArmorType, len(af.ArmorTypes)),
		shields:     make(map[string]ShieldSize, len(af.Shields)),
		skillByID:   make(map[string]*Skill, len(kf.Skills)),
		skillByName: make(map[string]*Skill, len(kf.Skills)),
		species:     make(map[string]*character.Species, len(sf.Species)),
		weights:     cf.Weights,
		tags:        cf.Tags,
		slotTags:    cf.SlotTags,
		anywhere:    make(map[string]bool, len(cf.EquipAnywhere)),
		categories:  kf.Categories,
		skills:      kf.Skills,
	}

	for _, a := range af.ArmorTypes {
		key := Fold(a.Name)
		if _, dup := rs.armor[key]; dup {
			errs = append(errs, fmt.Errorf("armor type %q defined twice", a.Name))
		}
		rs.armor[key] = a
	}
	for _, s := range af.Shields {
		rs.shields[Fold(s.Name)] = *s
	}

	for tag := range cf.SlotTags {
		if _, clash := cf.Tags[tag]; clash {
			errs = append(errs, fmt.Errorf("coverage tag %q is both a slot tag and a fixed tag", tag))
		}
	}
	for _, tag := range cf.EquipAnywhere {
		if _, ok := cf.Tags[tag]; !ok {
			errs = append(errs, fmt.Errorf("equip_anywhere tag %q is not a coverage tag", tag))
		}
		rs.anywhere[tag] = true
	}

	cats := make(map[string]bool, len(kf.Categories))
	for _, c := range kf.Categories {
		cats[c] = true
	}
	for _, s := range kf.Skills {
		if !cats[s.Category] {
			errs = append(errs, fmt.Errorf("skill %q: unknown category %q", s.ID, s.Category))
		}
		if _, dup := rs.skillByID[s.ID]; dup {
			errs = append(errs, fmt.Errorf("skill %q defined twice", s.ID))
		}
		rs.skillByID[s.ID] = s
		rs.skillByName[Fold(s.Name)] = s
	}

	for _, sp := range sf.Species {
		rs.species[Fold(sp.Name)] = sp
	}

	return rs, errs
}
