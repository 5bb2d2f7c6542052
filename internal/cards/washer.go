package cards

const (
	HintSelect  = "運転内容を選んでください"
	HintConfirm = "内容を確認し、「スタート」を押してください"
)

var amounts = []Option{"標準", "少なめ", "多め"}

func modes() []Card {
	titles := []string{"洗濯のみ", "洗濯＋乾燥", "乾燥のみ", "スチーム", "ダウンロード", "お手入れ", "設定"}
	return nextCards(titles)
}

func courses() []Card {
	titles := []string{
		"おまかせ", "わが家流", "省エネ", "ナイト", "汚れはがし",
		"約40℃おまかせ", "パワフル滝", "どろんこ", "約40℃\nにおいスッキリ",
		"約40℃つけ置き\n(普段着)", "約40℃おまかせ\n(除菌)", "タオル専用",
		"化繊60分", "毛布", "約40℃毛布", "個別洗濯",
	}
	return nextCards(titles)
}

func details() []Card {
	cs := []Card{
		{Title: "洗剤", Icon: "bottle1", Options: amounts},
		{Title: "柔軟剤", Icon: "bottle2", Options: amounts},
		{Title: "おしゃれ着洗剤", Icon: "bottle3", Options: amounts},
		{Title: "洗い", Options: withFirst("自動", Minutes(1, 30))},
		{Title: "すすぎ", Options: withFirst("自動", Minutes(1, 30))},
		{Title: "脱水", Options: withFirst("標準", Minutes(1, 30))},
		{Title: "乾燥", Options: withFirst("標準", Minutes(1, 30))},
		{Title: "水位", Options: []Option{"自動", "15ℓ", "20ℓ", "25ℓ", "30ℓ", "35ℓ", "40ℓ", "45ℓ", "50ℓ", "55ℓ"}},
		{Title: "2度洗い", Options: []Option{"あり", "なし"}},
		{Title: "予約", Options: withFirst("なし", Hours(1, 24))},
	}
	for i := range cs {
		cs[i].ID = i
		cs[i].Editable = true
	}
	return cs
}

// Default is the washer wizard: mode -> course -> detail options.
func Default() *Registry {
	return MustNew(
		Stage{Name: "mode", Hint: HintSelect, Cards: modes()},
		Stage{Name: "course", Hint: HintSelect, Cards: courses()},
		Stage{Name: "detail", Hint: HintConfirm, Cards: details()},
	)
}

func nextCards(titles []string) []Card {
	cs := make([]Card, len(titles))
	for i, t := range titles {
		cs[i] = Card{ID: i, Title: t, Next: true}
	}
	return cs
}

func withFirst(first Option, rest []Option) []Option {
	return append([]Option{first}, rest...)
}
