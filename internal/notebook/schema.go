package notebook

import (
	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed nbformat.v4.schema.json
var schemaSource string

var nbformatSchema = jsonschema.MustCompileString("nbformat.v4.schema.json", schemaSource)

func validateSchema(doc any) error {
	return nbformatSchema.Validate(doc)
}
