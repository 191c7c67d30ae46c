package generator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyInput is returned when the source is blank.
	ErrEmptyInput = errors.New("please paste your C# models")
	// ErrNoClassesFound is returned when no class or record declaration was found.
	ErrNoClassesFound = errors.New("no C# classes or records were found")
	// ErrEmptyProperties matches any *EmptyPropertiesError via errors.Is.
	ErrEmptyProperties = errors.New("class has no auto-properties")
)

// EmptyPropertiesError lists classes without any recognized auto-property.
type EmptyPropertiesError struct {
	Classes []string
}

func (e *EmptyPropertiesError) Error() string {
	return fmt.Sprintf("found %d class(es) with no properties: %s. Make sure they contain auto-properties",
		len(e.Classes), strings.Join(e.Classes, ", "))
}

func (e *EmptyPropertiesError) Is(target error) bool { return target == ErrEmptyProperties }
