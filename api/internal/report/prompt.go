package report

import (
	"fmt"

	"github.com/google/generative-ai-go/genai"
)

// PromptVersion identifies SystemInstruction. Bump it whenever the text changes.
const PromptVersion = "laporan-v1"

// MinParagraphChars is the length every expanded field is asked to reach.
// It is never checked locally.
const MinParagraphChars = 100

const (
	FieldActivity = "activityExpanded"
	FieldLearning = "learningExpanded"
	FieldObstacle = "obstacleExpanded"
)

// SystemInstruction is sent with every request.
var SystemInstruction = fmt.Sprintf(`Anda adalah asisten penulis laporan harian profesional.
Kembangkan catatan singkat pengguna menjadi bagian laporan yang rinci dan utuh dalam Bahasa Indonesia.

Aturan:
1. Setiap bagian (Uraian Aktivitas, Pembelajaran, Kendala) WAJIB berisi minimal %[1]d karakter.
2. Gaya bahasa formal tetapi SEDERHANA dan MUDAH DIPAHAMI.
   - Jangan memakai kata-kata sastra, puitis, atau kosakata bombastis yang jarang dipakai.
   - Gunakan kalimat yang lugas, efektif, dan komunikatif.
3. Hindari pengulangan kata yang tidak perlu, tetapi tetap kaya detail.
4. Uraian aktivitas: jelaskan konteks, tindakan yang dilakukan, dan hasilnya.
5. Pembelajaran yang diperoleh: jelaskan analisis, dampaknya, dan keterampilan yang meningkat.
6. Kendala yang dialami: jelaskan akar masalah, dampak, dan langkah awal penyelesaian.
7. Jika catatan pengguna sangat singkat (misalnya "fix bug"), lakukan improvisasi yang logis agar
   mencapai %[1]d karakter, tetap dengan bahasa yang membumi dan tanpa jargon teknis berlebihan.
8. Keluaran berupa teks polos. JANGAN gunakan tag HTML (seperti <b> atau <i>) maupun markdown.
`, MinParagraphChars)

// Request is the payload for one generation call.
type Request struct {
	Version           string
	SystemInstruction string
	Prompt            string
	Schema            *genai.Schema
}

// BuildRequest embeds the notes verbatim, in quotes, under labelled headings.
// The notes are neither validated nor escaped.
func BuildRequest(in ReportInput) Request {
	prompt := fmt.Sprintf(`Kembangkan poin-poin berikut menjadi laporan lengkap dengan bahasa yang mudah dipahami:

1. Uraian aktivitas (konsep inti): "%s"
2. Pembelajaran yang diperoleh (konsep inti): "%s"
3. Kendala yang dialami (konsep inti): "%s"
`, in.Activity, in.Learning, in.Obstacle)

	return Request{
		Version:           PromptVersion,
		SystemInstruction: SystemInstruction,
		Prompt:            prompt,
		Schema:            ResponseSchema(),
	}
}

// ResponseSchema is the reply shape requested from the model: an object with
// exactly the three expanded fields, all required.
func ResponseSchema() *genai.Schema {
	field := func(what string) *genai.Schema {
		return &genai.Schema{
			Type: genai.TypeString,
			Description: fmt.Sprintf("Paragraf formal minimal %d karakter untuk %s, bahasa mudah dipahami, tanpa tag HTML.",
				MinParagraphChars, what),
		}
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			FieldActivity: field("uraian aktivitas"),
			FieldLearning: field("pembelajaran yang diperoleh"),
			FieldObstacle: field("kendala yang dialami"),
		},
		Required: []string{FieldActivity, FieldLearning, FieldObstacle},
	}
}
