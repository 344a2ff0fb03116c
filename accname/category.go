package accname

import "github.com/pinchtab/ariaquery/dom"

// category selects the text alternative strategy for an element.
type category int

const (
	catDefault category = iota
	catInput
	catTextArea
	catSubtree      // button, a, output
	catFirstChild   // fieldset, figure, table
	catLabelOrTitle // select, datalist, optgroup, option, keygen, progress, meter, legend
	catSummary
	catAltOrTitle // img, area
	catLabel
)

var categories = map[string]category{
	"input":    catInput,
	"textarea": catTextArea,
	"button":   catSubtree,
	"a":        catSubtree,
	"output":   catSubtree,
	"fieldset": catFirstChild,
	"figure":   catFirstChild,
	"table":    catFirstChild,
	"select":   catLabelOrTitle,
	"datalist": catLabelOrTitle,
	"optgroup": catLabelOrTitle,
	"option":   catLabelOrTitle,
	"keygen":   catLabelOrTitle,
	"progress": catLabelOrTitle,
	"meter":    catLabelOrTitle,
	"legend":   catLabelOrTitle,
	"summary":  catSummary,
	"img":      catAltOrTitle,
	"area":     catAltOrTitle,
	"label":    catLabel,
}

// captions names the child element whose content names a catFirstChild
// element.
var captions = map[string]string{
	"fieldset": "legend",
	"figure":   "figcaption",
	"table":    "caption",
}

func categoryOf(n dom.Node) category {
	return categories[n.Tag()]
}

// inputCategory selects the strategy for an <input> by type.
type inputCategory int

const (
	inputNone inputCategory = iota
	inputTextLike
	inputButton
	inputSubmit
	inputImage
	inputCheckable
	inputRange
)

var inputCategories = map[string]inputCategory{
	"text":     inputTextLike,
	"password": inputTextLike,
	"search":   inputTextLike,
	"tel":      inputTextLike,
	"url":      inputTextLike,
	"button":   inputButton,
	"submit":   inputSubmit,
	"reset":    inputSubmit,
	"image":    inputImage,
	"checkbox": inputCheckable,
	"radio":    inputCheckable,
	"range":    inputRange,
	"number":   inputRange,
}
