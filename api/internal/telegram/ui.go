package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"laporan-harian/api/internal/report"
	"laporan-harian/api/internal/util"
)

const (
	callbackRetry = "retry"

	// Telegram rejects messages above 4096 characters.
	maxMessageRunes = 4000
)

const (
	msgIntro = "Halo! Saya membantu menyusun laporan harian.\n" +
		"Kirim poin-poin singkat, nanti AI mengembangkannya menjadi paragraf formal (min. 100 karakter)."
	msgAskActivity = "1. Uraian Aktivitas\nApa yang Anda kerjakan hari ini? Siapa yang terlibat?"
	msgAskLearning = "2. Pembelajaran yang Diperoleh\nAnalisis baru atau keterampilan yang meningkat."
	msgAskObstacle = "3. Kendala yang Dialami\nTantangan spesifik dan dampaknya."
	msgBlank       = "Isian tidak boleh kosong. Silakan kirim lagi."
	msgLoading     = "Sedang Menulis..."
	msgDone        = "Selesai"
	msgBusy        = "Laporan sebelumnya masih diproses. Mohon tunggu."
	msgBusyResend  = "Laporan sebelumnya masih diproses. Catatan Anda tersimpan; kirim ulang isian kendala sebentar lagi."
	msgNoRetry     = "Tidak ada laporan gagal yang perlu diulang. Ketik /start untuk membuat laporan baru."
	msgReset       = "Formulir dikosongkan. Ketik /start untuk membuat laporan baru."
	msgIdle        = "Ketik /start untuk membuat laporan baru."
	msgUnknown     = "Perintah tidak dikenal. Ketik /help."
	msgHelp        = "/start atau /baru: isi formulir laporan baru\n/reset: kosongkan formulir\n/help: bantuan"
)

func makeRetryKeyboard() tgbotapi.InlineKeyboardMarkup {
	btn := tgbotapi.NewInlineKeyboardButtonData("Coba Lagi", callbackRetry)
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(btn))
}

// sectionTexts renders one section as plain text so it can be copied as is.
// Long sections continue over several messages.
func sectionTexts(s report.Section) []string {
	return util.SplitRunes(fmt.Sprintf("%s · %d kata\n\n%s", s.Title, s.Words, s.Content), maxMessageRunes)
}
