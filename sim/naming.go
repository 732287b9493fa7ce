package sim

import "strings"

// Named describes an object that has a name.
type Named interface {
	// Name returns the name of the object.
	Name() string
}

// NameMustBeValid panics if the name does not follow the naming convention.
// A name is a dot-separated list of elements. Each element starts with a
// capital letter and does not contain underscores, dashes, or quotes.
func NameMustBeValid(name string) {
	defer func() {
		if r := recover(); r != nil {
			panic("Name " + name + " is not valid: " + r.(string))
		}
	}()

	for _, elem := range strings.Split(name, ".") {
		elementMustBeValid(elem)
	}
}

func elementMustBeValid(elem string) {
	if elem == "" {
		panic("Name element must not be empty")
	}

	invalidChars := []string{
		"_", "\"", "'", "-",
	}

	for _, c := range invalidChars {
		if strings.Contains(elem, c) {
			panic("Name element must not contain " + c)
		}
	}

	if elem[0] < 'A' || elem[0] > 'Z' {
		panic("Name element must start with a capital letter")
	}
}

// BuildName builds a name from a parent name and an element name.
func BuildName(parentName, elementName string) string {
	if parentName == "" {
		return elementName
	}

	return parentName + "." + elementName
}
