package entity

import "github.com/fogfish/opts"

// AddOptions modifies an AddItems call.
type AddOptions struct {
	// KeepExistingItems skips items whose id is already held instead of
	// rejecting the batch.
	KeepExistingItems bool

	startIndex    int
	hasStartIndex bool
}

// AddOption configures an AddItems call.
type AddOption = opts.Option[AddOptions]

// KeepExistingItems skips already held ids instead of failing.
var KeepExistingItems = opts.ForName[AddOptions, bool]("KeepExistingItems")

// StartIndex inserts the new items at index i of an ordered collection. It is
// ignored by unordered collections.
func StartIndex(i int) AddOption {
	return opts.Type[AddOptions](func(o *AddOptions) error {
		o.startIndex = i
		o.hasStartIndex = true
		return nil
	})
}

func applyAddOptions(options []AddOption) AddOptions {
	var o AddOptions
	if err := opts.Apply(&o, options); err != nil {
		panic(err)
	}
	return o
}

// Paging selects a page of an ordered collection. Offset is a page number, the
// first item of the page is at Offset*Limit.
type Paging struct {
	Offset int
	Limit  int
}
