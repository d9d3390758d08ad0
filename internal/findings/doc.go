// Package findings defines the failure taxonomy shared by the notebook
// checks, the header codec, and the hook driver.
//
// Every failure is tagged with one of the exported sentinel errors so callers
// can classify with errors.Is without parsing messages. The driver uses the
// classification to pick an exit status: repair failures are reported apart
// from content that simply does not validate.
package findings
