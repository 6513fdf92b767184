// Package seed holds the built-in clinic directory: four catalog
// facilities, their physicians and editorial reviews, plus the
// reference vocabularies used by search and the review form. The data
// is immutable; every accessor returns fresh copies so callers can
// merge user-generated rows into the result without corrupting the
// catalog for the next request.
package seed

import "github.com/iliyamo/clinic-review-platform/internal/model"

// Symptom maps a patient-facing complaint to the department that
// usually handles it. Picking a symptom in search narrows clinics to
// that department.
type Symptom struct {
	Label string `json:"label"`
	Dept  string `json:"dept"`
}

var symptoms = []Symptom{
	{Label: "発熱・悪寒", Dept: "内科"},
	{Label: "頭痛・偏頭痛", Dept: "神経内科"},
	{Label: "腹痛・下痢", Dept: "内科"},
	{Label: "咳・鼻水・喉", Dept: "内科"},
	{Label: "腰痛・肩こり", Dept: "整形外科"},
	{Label: "膝・関節痛", Dept: "整形外科"},
	{Label: "皮膚のかゆみ・湿疹", Dept: "皮膚科"},
	{Label: "不眠・うつ", Dept: "神経内科"},
	{Label: "動悸・息切れ", Dept: "内科"},
	{Label: "子どもの急な発熱", Dept: "小児科"},
	{Label: "妊娠・婦人科", Dept: "産婦人科"},
	{Label: "めまい・耳鳴り", Dept: "神経内科"},
}

var departments = []string{"内科", "外科", "整形外科", "小児科", "産婦人科", "皮膚科", "神経内科"}

var reviewTags = []string{"説明が丁寧", "待ち時間短め", "スタッフ親切", "設備が充実", "清潔", "話しやすい", "専門的", "予約しやすい"}

// Appointment slots offered by the booking forms. Online slots are a
// shorter list because video consultations run on a tighter schedule.
var (
	visitSlots  = []string{"08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "14:00", "14:30", "15:00", "15:30", "16:00", "16:30"}
	onlineSlots = []string{"09:00", "09:30", "10:00", "10:30", "14:00", "14:30", "15:00", "16:00", "16:30"}
)

var clinics = []model.Clinic{
	{
		ID: "1", Name: "東京中央メディカルセンター", Short: "東京中央MC",
		Address: "東京都千代田区丸の内1-1-1", Lat: 35.6812, Lng: 139.7671,
		Tel: "03-1234-5678", Hours: "月〜金 8:30〜17:00 / 土 8:30〜12:30 / 日祝 休診",
		Depts:  []string{"内科", "外科", "整形外科", "小児科", "産婦人科"},
		Rating: 4.3, ReviewCount: 128, Wait: "約30分", Parking: true, NightService: true,
		FemaleDoctor: true, Online: true, Verified: true, Today: true,
		Desc:   "都心に位置する総合病院。最新MRI・CT設備完備、専門医チームによる高度医療を提供。2024年新棟完成。",
		Access: "東京駅丸の内南口より徒歩5分 / 地下鉄二重橋前駅より徒歩2分",
		Beds:   320, Founded: 1978,
	},
	{
		ID: "2", Name: "渋谷ファミリークリニック", Short: "渋谷FC",
		Address: "東京都渋谷区渋谷2-3-4", Lat: 35.6598, Lng: 139.7025,
		Tel: "03-2345-6789", Hours: "月〜土 9:00〜18:00 / 日祝 休診",
		Depts:  []string{"内科", "小児科", "皮膚科"},
		Rating: 4.7, ReviewCount: 89, Wait: "約15分", Online: true, Verified: true, Today: true,
		Desc:   "地域密着型のアットホームなクリニック。子どもから高齢者まで家族全員のかかりつけ医として親しまれています。",
		Access: "渋谷駅ハチ公口より徒歩8分 / 表参道駅より徒歩10分",
		Founded: 2012,
	},
	{
		ID: "3", Name: "新宿皮フ科クリニック", Short: "新宿皮フ科",
		Address: "東京都新宿区新宿4-2-8", Lat: 35.6896, Lng: 139.7006,
		Tel: "03-3456-7890", Hours: "月〜金 10:00〜19:30 / 土 10:00〜17:00",
		Depts:  []string{"皮膚科"},
		Rating: 4.6, ReviewCount: 73, Wait: "約20分", FemaleDoctor: true, Verified: true, Today: true,
		Desc:   "皮膚科専門クリニック。アトピー・ニキビから美容皮膚科まで対応。最新レーザー機器完備。",
		Access: "新宿三丁目駅E5出口より徒歩1分",
		Founded: 2019,
	},
	{
		ID: "4", Name: "六本木夜間・休日クリニック", Short: "六本木夜間",
		Address: "東京都港区六本木3-1-2", Lat: 35.6628, Lng: 139.7322,
		Tel: "03-4567-8901", Hours: "月〜日 18:00〜翌2:00（年中無休）",
		Depts:  []string{"内科", "小児科"},
		Rating: 4.1, ReviewCount: 56, Wait: "約45分", NightService: true, Today: true,
		Desc:   "夜間・深夜専門クリニック。仕事帰りや休日の急な体調不良に年中無休で対応します。",
		Access: "六本木駅2番出口より徒歩3分",
		Founded: 2020,
	},
}

var doctorsData = []model.Doctor{
	{
		ID: "1", ClinicID: "1", Name: "山田 一郎", Title: "院長・内科専門医", Dept: "内科", Exp: 22,
		Edu:   "東京大学医学部",
		Certs: []string{"日本内科学会認定医", "糖尿病専門医", "総合内科専門医"},
		Specialties: []string{"糖尿病", "高血圧", "メタボリックシンドローム"},
		Bio:    "患者様一人ひとりの生活背景を大切にした診療を心がけています。難治性の生活習慣病も、長期的なサポートで改善を目指します。",
		Rating: 4.7, RatingCnt: 64,
	},
	{
		ID: "2", ClinicID: "1", Name: "佐藤 二郎", Title: "整形外科部長", Dept: "整形外科", Exp: 15,
		Edu:   "慶應義塾大学医学部",
		Certs: []string{"整形外科専門医", "スポーツ医学専門医"},
		Specialties: []string{"膝関節", "腰椎ヘルニア", "スポーツ外傷"},
		Bio:    "スポーツ医学を専門とし、アスリートから高齢者まで幅広く対応。できる限り手術を避けた治療を提案します。",
		Rating: 4.4, RatingCnt: 38,
	},
	{
		ID: "3", ClinicID: "1", Name: "伊藤 花子", Title: "産婦人科部長", Dept: "産婦人科", Exp: 18,
		Edu:   "大阪大学医学部",
		Certs: []string{"産科婦人科専門医", "母体保護法指定医", "生殖医療専門医"},
		Specialties: []string{"ハイリスク妊娠", "不妊治療", "低侵襲手術"},
		Bio:    "妊娠・出産・婦人科疾患まで、女性のライフステージを通じてサポートします。女性患者様が安心して相談できる環境づくりを大切にしています。",
		Female: true, Rating: 4.9, RatingCnt: 52,
	},
	{
		ID: "4", ClinicID: "2", Name: "加藤 賢司", Title: "院長・小児科専門医", Dept: "小児科", Exp: 12,
		Edu:   "京都大学医学部",
		Certs: []string{"小児科専門医", "小児アレルギー専門医"},
		Specialties: []string{"小児アレルギー", "夜尿症", "発達支援"},
		Bio:    "子どもの「なんで？」に向き合い、保護者の方と一緒に考える診療をしています。ワクチンや健診もお気軽にご相談ください。",
		Rating: 4.8, RatingCnt: 47,
	},
	{
		ID: "5", ClinicID: "3", Name: "田中 美穂", Title: "皮膚科院長", Dept: "皮膚科", Exp: 9,
		Edu:   "東北大学医学部",
		Certs: []string{"皮膚科専門医", "レーザー専門医"},
		Specialties: []string{"アトピー", "美容皮膚科", "皮膚腫瘍"},
		Bio:    "皮膚の悩みは見た目だけでなく心にも影響します。保険診療から自由診療まで、患者様のニーズに合わせた提案をします。",
		Female: true, Rating: 4.6, RatingCnt: 29,
	},
}

var editorialReviews = []model.Review{
	{
		ID: "1", ClinicID: "1", Author: "田中 花子", Avatar: "田", Age: "40代", Date: "2024-12-10",
		Rating: 5, Dept: "内科", DoctorID: "1", Title: "丁寧な説明で安心できました",
		Body:  "初めて受診しましたが、先生がとても丁寧に説明してくださり、不安が和らぎました。電子カルテで過去の経過もすぐ確認していただき、スムーズな診察でした。スタッフの方も皆さん親切で、また来院したいと思います。",
		Tags:  []string{"説明が丁寧", "待ち時間短め", "スタッフ親切"},
		Helpful: 24, DrRating: 5, FacRating: 4, WaitRate: 4,
		Reply: "このたびはご来院いただきありがとうございます。スタッフ一同、今後もより良い診療を心がけてまいります。",
	},
	{
		ID: "2", ClinicID: "1", Author: "鈴木 太郎", Avatar: "鈴", Age: "50代", Date: "2024-11-28",
		Rating: 4, Dept: "整形外科", DoctorID: "2", Title: "設備が充実していて安心",
		Body:  "MRIが当日撮れて、結果もその日のうちに説明してもらえました。画像を見ながら分かりやすく解説してくれて、治療方針もすぐ決まりました。午後は待ち時間が長めなので午前中の受診がおすすめです。",
		Tags:  []string{"設備が充実", "専門的"},
		Helpful: 15, DrRating: 4, FacRating: 5, WaitRate: 3,
	},
	{
		ID: "3", ClinicID: "1", Author: "佐藤 美咲", Avatar: "佐", Age: "30代", Date: "2024-11-15",
		Rating: 5, Dept: "産婦人科", DoctorID: "3", Title: "出産でお世話になりました",
		Body:  "妊娠初期から出産まで約10ヶ月間お世話になりました。伊藤先生はとても話しやすく、不安なことがあると丁寧に答えてくれました。助産師さんや看護師さんも皆さん優しく、安心してお産に臨めました。個室も清潔で快適でした。",
		Tags:  []string{"スタッフ親切", "設備が充実", "清潔"},
		Helpful: 32, DrRating: 5, FacRating: 5, WaitRate: 4,
	},
	{
		ID: "4", ClinicID: "1", Author: "高橋 正一", Avatar: "高", Age: "60代", Date: "2024-10-30",
		Rating: 3, Dept: "内科", DoctorID: "1", Title: "待ち時間が長い",
		Body:  "評判通り先生は良いのですが、予約をしても1時間以上待つことが多く困っています。混んでいるのは人気の証拠とは思いますが、高齢の患者には少し辛いです。待合室の椅子は座り心地が良いので助かっています。",
		Tags:  []string{"説明が丁寧"},
		Helpful: 8, DrRating: 5, FacRating: 4, WaitRate: 1,
	},
	{
		ID: "5", ClinicID: "2", Author: "山田 健一", Avatar: "山", Age: "40代", Date: "2024-12-05",
		Rating: 5, Dept: "内科", DoctorID: "4", Title: "先生がとても話しやすい",
		Body:  "3年ほど通っています。加藤先生は子どもの話もじっくり聞いてくれて、薬の説明も分かりやすいです。待ち時間もほとんどなく、予約アプリで空き状況もすぐ確認できて便利です。",
		Tags:  []string{"話しやすい", "待ち時間短め", "予約しやすい"},
		Helpful: 18, DrRating: 5, FacRating: 4, WaitRate: 5,
	},
	{
		ID: "6", ClinicID: "2", Author: "中村 由紀", Avatar: "中", Age: "30代", Date: "2024-11-20",
		Rating: 5, Dept: "小児科", DoctorID: "4", Title: "子どもが安心して受診できます",
		Body:  "1歳の子の予防接種で通っています。先生が子どもの扱いがとても上手で、泣かずに終わることも多いです。親への説明も丁寧で、何かあればメッセージで相談できるのもありがたいです。",
		Tags:  []string{"スタッフ親切", "説明が丁寧"},
		Helpful: 22, DrRating: 5, FacRating: 5, WaitRate: 4,
		Reply: "いつもご来院いただきありがとうございます。お子様の成長を一緒に見守れて嬉しいです！",
	},
	{
		ID: "7", ClinicID: "3", Author: "林 さつき", Avatar: "林", Age: "20代", Date: "2024-12-08",
		Rating: 5, Dept: "皮膚科", DoctorID: "5", Title: "ニキビが劇的に改善しました",
		Body:  "10年悩んでいたニキビが3ヶ月で劇的に改善！田中先生は肌質や生活習慣まで丁寧に聞いてくださり、内服・外用・ケアの3方向から治療してくれます。少し価格は高めですがそれだけの価値があります。",
		Tags:  []string{"専門的", "説明が丁寧"},
		Helpful: 35, DrRating: 5, FacRating: 5, WaitRate: 4,
	},
	{
		ID: "8", ClinicID: "3", Author: "吉田 亜矢", Avatar: "吉", Age: "30代", Date: "2024-11-10",
		Rating: 4, Dept: "皮膚科", DoctorID: "5", Title: "アトピーの相談に来ました",
		Body:  "長年のアトピーで相談に来ました。先生の知識が豊富で、新しい薬についても詳しく説明してくれました。予約必須ですが待ち時間は少なめです。",
		Tags:  []string{"専門的", "待ち時間短め"},
		Helpful: 12, DrRating: 4, FacRating: 4, WaitRate: 4,
	},
	{
		ID: "9", ClinicID: "4", Author: "伊藤 良子", Avatar: "伊", Age: "30代", Date: "2024-12-01",
		Rating: 4, Dept: "内科", Title: "夜間でも診てもらえて助かりました",
		Body:  "深夜に急な発熱で困っていたところ、こちらで診ていただけました。待ち時間は1時間ほどありましたが、夜間に診てもらえるだけで十分です。インフルの検査・処方まで全部対応してもらえました。",
		Tags:  []string{"夜間対応", "専門的"},
		Helpful: 21, DrRating: 4, FacRating: 3, WaitRate: 2,
	},
}

// Clinics returns a copy of the catalog facilities. The embedded
// Rating and ReviewCount are fallback values only; the catalog layer
// recomputes both from the live review set.
func Clinics() []model.Clinic {
	out := make([]model.Clinic, len(clinics))
	for i, c := range clinics {
		out[i] = c
		out[i].Depts = append([]string(nil), c.Depts...)
	}
	return out
}

// Clinic returns the catalog facility with the given id, or false.
func Clinic(id string) (model.Clinic, bool) {
	for _, c := range clinics {
		if c.ID == id {
			cc := c
			cc.Depts = append([]string(nil), c.Depts...)
			return cc, true
		}
	}
	return model.Clinic{}, false
}

// HasClinic reports whether id names a catalog facility.
func HasClinic(id string) bool {
	_, ok := Clinic(id)
	return ok
}

// Doctors returns a copy of all catalog physicians.
func Doctors() []model.Doctor {
	out := make([]model.Doctor, len(doctorsData))
	for i, d := range doctorsData {
		out[i] = copyDoctor(d)
	}
	return out
}

// DoctorsFor returns the catalog physicians working at a clinic.
func DoctorsFor(clinicID string) []model.Doctor {
	out := []model.Doctor{}
	for _, d := range doctorsData {
		if d.ClinicID == clinicID {
			out = append(out, copyDoctor(d))
		}
	}
	return out
}

// ReviewsFor returns the editorial reviews for a clinic in catalog
// order.
func ReviewsFor(clinicID string) []model.Review {
	out := []model.Review{}
	for _, r := range editorialReviews {
		if r.ClinicID == clinicID {
			out = append(out, copyReview(r))
		}
	}
	return out
}

// Symptoms returns the symptom-to-department reference list.
func Symptoms() []Symptom {
	return append([]Symptom(nil), symptoms...)
}

// Departments returns the department vocabulary.
func Departments() []string {
	return append([]string(nil), departments...)
}

// ReviewTags returns the impression tags offered on the review form.
func ReviewTags() []string {
	return append([]string(nil), reviewTags...)
}

// VisitSlots returns the time slots offered for in-person bookings.
func VisitSlots() []string {
	return append([]string(nil), visitSlots...)
}

// OnlineSlots returns the time slots offered for online consultations.
func OnlineSlots() []string {
	return append([]string(nil), onlineSlots...)
}

func copyDoctor(d model.Doctor) model.Doctor {
	d.Certs = append([]string(nil), d.Certs...)
	d.Specialties = append([]string(nil), d.Specialties...)
	return d
}

func copyReview(r model.Review) model.Review {
	r.Tags = append([]string(nil), r.Tags...)
	return r
}
