package diag

import "moveide/internal/source"

// Reporter принимает готовые диагностики от рендера и драйвера.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// Pending is a diagnostic under construction. Send delivers it at most once.
type Pending struct {
	to   Reporter
	d    Diagnostic
	sent bool
}

// Start begins a diagnostic addressed to r.
func Start(r Reporter, sev Severity, code Code, primary source.Span, msg string) *Pending {
	return &Pending{to: r, d: New(sev, code, primary, msg)}
}

// StartInfo begins an informational diagnostic, the severity every IDE annotation uses.
func StartInfo(r Reporter, code Code, primary source.Span, msg string) *Pending {
	return Start(r, SevInfo, code, primary, msg)
}

// Note attaches a secondary label.
func (p *Pending) Note(sp source.Span, msg string) *Pending {
	if p != nil {
		p.d = p.d.WithNote(sp, msg)
	}
	return p
}

// Built returns the diagnostic as assembled so far.
func (p *Pending) Built() Diagnostic {
	if p == nil {
		return Diagnostic{}
	}
	return p.d
}

// Send hands the diagnostic to the reporter; repeated calls are no-ops.
func (p *Pending) Send() {
	if p == nil || p.sent {
		return
	}
	p.sent = true
	ReportDiagnostic(p.to, p.d)
}

// BagReporter складывает всё в Bag; nil Bag молча игнорируется.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag != nil {
		r.Bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes})
	}
}

// ReportDiagnostic unpacks d into r.
func ReportDiagnostic(r Reporter, d Diagnostic) {
	if r != nil {
		r.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
	}
}
