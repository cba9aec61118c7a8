package migration

import (
	"fmt"
	"strings"

	"schemadiff/internal/core"
)

// renderDataType renders a column's DataType together with its
// parenthesized length or precision/scale, per the fixed column-rendering
// form: a VARCHAR-family type carrying a MaxLength gets "(maxLength)";
// otherwise any type with a non-zero Precision gets "(precision,scale)",
// whatever its name. A column with neither renders as its bare DataType.
func renderDataType(c core.Column) string {
	if c.MaxLength > 0 && strings.Contains(strings.ToUpper(c.DataType), "VARCHAR") {
		return fmt.Sprintf("%s(%d)", c.DataType, c.MaxLength)
	}
	if c.Precision > 0 {
		return fmt.Sprintf("%s(%d,%d)", c.DataType, c.Precision, c.Scale)
	}
	return c.DataType
}
