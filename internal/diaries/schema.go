package diaries

import (
	_ "embed"

	"github.com/wesleyorama2/diaries/internal/http"
	"github.com/wesleyorama2/diaries/pkg/jsonschema"
)

var (
	//go:embed schemas/diary.json
	diarySchemaDocument string
	//go:embed schemas/diaries.json
	diariesSchemaDocument string

	diarySchema   = jsonschema.MustCompile("diary.json", diarySchemaDocument)
	diariesSchema = jsonschema.MustCompile("diaries.json", diariesSchemaDocument)
)

// ValidateDiary checks that the response carries a well-formed diary.
func ValidateDiary(resp *http.Response) error {
	return validate(resp, diarySchema)
}

// ValidateDiaries checks that the response carries a well-formed list.
func ValidateDiaries(resp *http.Response) error {
	return validate(resp, diariesSchema)
}

func validate(resp *http.Response, schema *jsonschema.Schema) error {
	body, err := resp.Body()
	if err != nil {
		return err
	}
	return schema.ValidateValue(body)
}
