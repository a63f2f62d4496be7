// Package cloudconvert is a minimal client for the CloudConvert v2
// jobs API, covering exactly what DOCX-to-PDF conversion needs: create
// a three-task job (upload, convert, export by URL), upload the input
// bytes, poll until the job reaches a terminal status, and download
// the exported file.
//
// The client holds the API credential explicitly; there is no package
// state. Polling is bounded by a wall-clock timeout and honors context
// cancellation between checks. No step is retried: any network or
// protocol failure surfaces immediately to the caller.
package cloudconvert
