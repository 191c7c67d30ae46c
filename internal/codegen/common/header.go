package common

import "fmt"

// FileHeader returns the "do not edit" banner placed at the top of generated
// files. comment is the line comment token of the target language.
func FileHeader(comment, source string) string {
	return fmt.Sprintf("%[1]s Code generated by cs2ts %[2]s from %[3]s. DO NOT EDIT.\n%[1]s Regenerate with: cs2ts convert %[3]s\n\n",
		comment, VersionOrDev(), source)
}
