package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Consumer loop
		"Stopped by request":                      "要求により停止しました",
		"A new second has come; captured_fps=%d":  "新しい秒になりました; captured_fps=%d",
		"Using output: %s":                        "出力先: %s",
		"Using output: <stdout>":                  "出力先: <標準出力>",
		"End of replay":                           "リプレイが終了しました",
		"Sink drained":                            "シンクが空になりました",
		"Bye-bye":                                 "さようなら",

		// Encoder
		"Using JPEG quality: %d%%":                "JPEG品質: %d%%",
		"Hardware compression error, falling back to software": "ハードウェア圧縮エラー。ソフトウェアにフォールバックします",

		// Signals
		"Stopping by SIGTERM":                     "SIGTERM により停止中",
		"Stopping by SIGINT":                      "SIGINT により停止中",

		// Generator
		"Generating %d test frames at %dx%d":      "%d 枚のテストフレームを %dx%d で生成中",
		"Generated %d frames":                     "%d フレームを生成しました",
	})
}
