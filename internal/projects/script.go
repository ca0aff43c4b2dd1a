package projects

import "album-studio/internal/models"

var commonSteps = []string{
	"Согласовать с клиентом дату, место и список обязательных кадров",
	"Проверить технику: аккумуляторы, карты памяти, запасной объектив",
	"После съемки загрузить исходники в проект в течение суток",
}

var scripts = map[models.AlbumType][]string{
	models.AlbumWedding: {
		"Сборы невесты и жениха",
		"Первая встреча, прогулка",
		"Церемония: кольца, поцелуй, поздравления",
		"Банкет: первый танец, торт, букет",
	},
	models.AlbumGraduation: {
		"Общий кадр класса",
		"Индивидуальные портреты выпускников",
		"Кадры с учителями",
	},
	models.AlbumKids: {
		"Съемка в первой половине дня, пока ребенок не устал",
		"Игровые сюжеты с любимыми игрушками",
		"Портреты с родителями",
	},
	models.AlbumCorporate: {
		"Портреты руководства",
		"Рабочие процессы и офис",
		"Общий кадр коллектива",
	},
	models.AlbumFamily: {
		"Общие семейные кадры",
		"Пары и поколения",
		"Непостановочные моменты",
	},
	models.AlbumPortrait: {
		"Подбор образа и фона",
		"Крупный, поясной и ростовой планы",
	},
}

// ShootingScript: чек-лист съемки для типа альбома.
func ShootingScript(t models.AlbumType) []string {
	steps := make([]string, 0, len(commonSteps)+len(scripts[t]))
	steps = append(steps, scripts[t]...)
	return append(steps, commonSteps...)
}
