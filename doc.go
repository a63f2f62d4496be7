// Package coverletter generates personalized cover letters from DOCX
// templates by substituting placeholder tokens with client details.
//
// # Quick Start
//
// Create a generator and run it against a template:
//
//	gen, err := coverletter.New(coverletter.WithAPIKey(os.Getenv("COVERLETTER_API_KEY")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := gen.Generate(ctx, coverletter.Input{
//	    Template: templateBytes,
//	    Client: coverletter.ClientInfo{
//	        Name:     "Jane Doe",
//	        Company:  "Acme",
//	        Address1: "1 Main St",
//	    },
//	    Format: coverletter.FormatDocx,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.Filename, result.Data, 0644)
//
// # Placeholder Tokens
//
// Templates carry literal bracket tokens, each replaced everywhere it
// appears intact within a single formatting run:
//
//	<<CLIENT_NAME>>     client name
//	<<COMPANY>>         company name
//	<<ADDRESS>>         address line 1, plus line 2 on a new line when present
//	<<ADDRESS_LINE_1>>  address line 1 alone
//	<<ADDRESS_LINE_2>>  address line 2 alone
//	<<DATE>>            letter date
//
// A token the template author split across formatting runs (often a
// side effect of spell checking) is missed by default; set
// Input.MergeRuns to match across adjacent runs of a paragraph.
//
// # Generation Pipeline
//
// The pipeline follows these stages:
//
//  1. Client field validation (name, company, address, template)
//  2. Placeholder substitution across body, tables, headers, footers
//  3. DOCX serialization, formatting preserved byte for byte
//  4. Optional PDF conversion via the CloudConvert jobs API
//
// # PDF Output
//
// Requesting FormatPDF submits the generated DOCX to a remote
// conversion job and waits for it: create, upload, poll, download.
// The wait is bounded (WithPollTimeout) and honors the context, so a
// stuck job cannot block a caller forever. An API key is required only
// for this path; DOCX-only generation never touches the network.
package coverletter
