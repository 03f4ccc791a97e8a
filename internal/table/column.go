package table

import (
	"github.com/apache/arrow-go/v18/arrow"
)

// Column provides a type-erased interface over series of any element type.
type Column interface {
	Name() string
	Len() int
	DataType() arrow.DataType
	IsNull(index int) bool
	String() string
	Array() arrow.Array
	Release()
}
