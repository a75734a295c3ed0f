package answer

import (
	"fmt"

	"mathqa/pkg/types"
)

// Kind classifies why no answer could be produced.
type Kind string

const (
	KindUnreachable     Kind = "unreachable"
	KindTimeout         Kind = "timeout"
	KindTransport       Kind = "transport"
	KindMalformed       Kind = "malformed"
	KindLoadedEmpty     Kind = "loaded_empty"
	KindCompletedEmpty  Kind = "completed_empty"
	KindUnexpectedShape Kind = "unexpected_shape"
	KindNoLatex         Kind = "no_latex"
	KindInternal        Kind = "internal"
)

// Result is either an extracted answer or a failure, never both.
type Result struct {
	answer string
	kind   Kind
	msg    string
}

// Answer builds a successful result. An empty expression is not an answer:
// it becomes a no_latex failure.
func Answer(expr string) Result {
	if expr == "" {
		return Failure(KindNoLatex, msgNoLatex(""))
	}
	return Result{answer: expr}
}

// Failure builds an error result.
func Failure(kind Kind, msg string) Result {
	return Result{kind: kind, msg: msg}
}

// OK reports whether the result carries an answer.
func (r Result) OK() bool { return r.kind == "" }

// Value returns the extracted LaTeX body ("" on failure).
func (r Result) Value() string { return r.answer }

// Kind returns the failure classification ("" on success).
func (r Result) Kind() Kind { return r.kind }

// Message returns the user-facing error text ("" on success).
func (r Result) Message() string { return r.msg }

// Outcome is the metrics label for this result.
func (r Result) Outcome() string {
	if r.OK() {
		return "answer"
	}
	return string(r.kind)
}

// Response converts the result to the wire payload.
func (r Result) Response() types.AskResponse {
	if r.OK() {
		return types.AskResponse{Answer: r.answer}
	}
	return types.AskResponse{Error: r.msg}
}

// User-facing messages are Indonesian, matching the web client.

func msgUnreachable(baseURL string) string {
	return fmt.Sprintf("Tidak dapat terhubung ke server Ollama. Pastikan Ollama berjalan di %s.", baseURL)
}

const (
	msgTimeout         = "Permintaan ke Ollama habis waktu. Model mungkin membutuhkan waktu lebih lama untuk merespons."
	msgMalformed       = "Respons dari Ollama bukan format JSON yang valid."
	msgLoadedEmpty     = "Model dimuat tetapi tidak menghasilkan respons. Mungkin prompt terlalu singkat atau model tidak menghasilkan output untuk input ini."
	msgCompletedEmpty  = "Model selesai memproses tetapi tidak memberikan konten respons. Periksa prompt atau konfigurasi model."
	msgUnexpectedShape = "Model tidak memberikan konten respons yang valid atau format respons tidak terduga."
)

func msgTransport(err error) string {
	return fmt.Sprintf("Terjadi kesalahan saat berkomunikasi dengan Ollama: %v", err)
}

func msgNoLatex(content string) string {
	return "Model memberikan respons, tetapi tidak ditemukan ekspresi LaTeX yang valid untuk dirender. Respons lengkap: " + content
}

func msgInternal(v any) string {
	return fmt.Sprintf("Terjadi kesalahan tak terduga di backend: %v", v)
}
