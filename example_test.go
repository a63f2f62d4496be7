package coverletter_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	coverletter "github.com/alnah/go-coverletter"
)

// Generate a DOCX letter from a template on disk.
func Example() {
	template, err := os.ReadFile("letter.docx")
	if err != nil {
		log.Fatal(err)
	}

	gen, err := coverletter.New()
	if err != nil {
		log.Fatal(err)
	}

	result, err := gen.Generate(context.Background(), coverletter.Input{
		Template: template,
		Client: coverletter.ClientInfo{
			Name:     "Jane Doe",
			Company:  "Acme Corp",
			Address1: "1 Main St",
			Address2: "Suite 400",
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := os.WriteFile(result.Filename, result.Data, 0o644); err != nil {
		log.Fatal(err)
	}
	fmt.Println("wrote", result.Filename)
}

// PDF output needs a CloudConvert credential.
func ExampleNew_pdf() {
	gen, err := coverletter.New(
		coverletter.WithAPIKey(os.Getenv("COVERLETTER_API_KEY")),
		coverletter.WithPollTimeout(2*time.Minute),
	)
	if err != nil {
		log.Fatal(err)
	}

	template, err := os.ReadFile("letter.docx")
	if err != nil {
		log.Fatal(err)
	}

	result, err := gen.Generate(context.Background(), coverletter.Input{
		Template: template,
		Client: coverletter.ClientInfo{
			Name:     "Jane Doe",
			Company:  "Acme Corp",
			Address1: "1 Main St",
			Date:     "auto:long",
		},
		Format: coverletter.FormatPDF,
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := os.WriteFile(result.Filename, result.Data, 0o644); err != nil {
		log.Fatal(err)
	}
}
