package util

import (
	"encoding/xml"
	"os"
)

// LoadConfig unmarshals an XML config file into v.
func LoadConfig(filename string, v interface{}) error {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return xml.Unmarshal(contents, v)
}

// SaveConfig writes v to an XML config file.
func SaveConfig(filename string, v interface{}) error {
	contents, err := xml.MarshalIndent(v, "  ", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, contents, 0644)
}
