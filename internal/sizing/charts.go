package sizing

import "github.com/agamariel/uniformes/internal/models"

// Range - допустимый диапазон измерения, включительно.
type Range struct {
	Min float64
	Max float64
}

// Entry - строка таблицы размеров. Диапазоны соседних строк пересекаются.
type Entry struct {
	Size   string
	Height Range
	Chest  Range
	Waist  Range
	Hips   Range
}

// Weights - вес каждого измерения. Нулевой вес исключает измерение.
type Weights struct {
	Height float64
	Chest  float64
	Waist  float64
	Hips   float64
}

// Max возвращает максимально возможный балл.
func (w Weights) Max() float64 {
	return w.Height + w.Chest + w.Waist + w.Hips
}

// Chart - таблица размеров с весами и порогом уверенности.
type Chart struct {
	Kind     models.SizeChartKind
	Entries  []Entry
	Weights  Weights
	MinScore float64
}

// GarmentChart - верхняя одежда, пять размеров.
var GarmentChart = Chart{
	Kind: models.ChartGarment,
	Entries: []Entry{
		{Size: "PP", Height: Range{110, 125}, Chest: Range{56, 64}, Waist: Range{52, 58}, Hips: Range{58, 66}},
		{Size: "P", Height: Range{122, 138}, Chest: Range{62, 72}, Waist: Range{56, 64}, Hips: Range{64, 76}},
		{Size: "M", Height: Range{136, 152}, Chest: Range{70, 84}, Waist: Range{62, 72}, Hips: Range{74, 90}},
		{Size: "G", Height: Range{150, 166}, Chest: Range{82, 94}, Waist: Range{70, 80}, Hips: Range{88, 100}},
		{Size: "GG", Height: Range{164, 180}, Chest: Range{92, 104}, Waist: Range{78, 90}, Hips: Range{98, 112}},
	},
	Weights:  Weights{Height: 3, Chest: 4, Waist: 2, Hips: 2},
	MinScore: 6,
}

// PantsChart - брюки, числовые размеры 2-14. Обхват груди не учитывается.
var PantsChart = Chart{
	Kind: models.ChartPants,
	Entries: []Entry{
		{Size: "2", Height: Range{86, 98}, Waist: Range{48, 52}, Hips: Range{52, 57}},
		{Size: "4", Height: Range{98, 110}, Waist: Range{51, 55}, Hips: Range{56, 62}},
		{Size: "6", Height: Range{110, 122}, Waist: Range{54, 58}, Hips: Range{61, 67}},
		{Size: "8", Height: Range{122, 134}, Waist: Range{57, 62}, Hips: Range{66, 72}},
		{Size: "10", Height: Range{134, 146}, Waist: Range{61, 66}, Hips: Range{71, 78}},
		{Size: "12", Height: Range{146, 158}, Waist: Range{65, 70}, Hips: Range{77, 84}},
		{Size: "14", Height: Range{158, 170}, Waist: Range{69, 75}, Hips: Range{83, 90}},
	},
	Weights:  Weights{Height: 3, Waist: 3, Hips: 2},
	MinScore: 4,
}

// ChartFor возвращает таблицу по виду. Неизвестный вид - верхняя одежда.
func ChartFor(kind models.SizeChartKind) Chart {
	if kind == models.ChartPants {
		return PantsChart
	}
	return GarmentChart
}
