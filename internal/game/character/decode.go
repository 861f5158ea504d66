package character

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Decode reads one character snapshot in YAML form. Unknown fields are rejected.
// A missing ID is generated and nil collections are initialised.
//
// Postcondition: Returns a Character or a decode error.
func Decode(r io.Reader) (*Character, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Character
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("decoding character: empty document")
		}
		return nil, fmt.Errorf("decoding character: %w", err)
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Characteristics == nil {
		c.Characteristics = map[Stat]Characteristic{}
	}
	if c.HitLocations == nil {
		c.HitLocations = map[Location]HitLocation{}
	}
	if c.EquippedArmor == nil {
		c.EquippedArmor = map[Location]string{}
	}
	if c.Skills == nil {
		c.Skills = map[string]InvestedSkill{}
	}
	for i := range c.Inventory {
		if c.Inventory[i].ID == "" {
			c.Inventory[i].ID = uuid.NewString()
		}
	}
	return &c, nil
}

// LoadFile decodes the character snapshot at path.
func LoadFile(path string) (*Character, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening character %s: %w", path, err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
