package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"knyharnia/internal/entities"
)

type seedBook struct {
	title       string
	author      string
	genre       string
	coverURL    string
	description string
}

var seedGenres = []string{"Детектив", "Роман", "Фентезі"}

var seedBooks = []seedBook{
	{
		title:       "Виживуть п'ятеро",
		author:      "Голі Джексон",
		genre:       "Детектив",
		coverURL:    "/static/image/five_survive.jpg",
		description: "Компанія підлітків вирушає в подорож, яка перетворюється на смертельну гру, де вижити зможуть не всі.",
	},
	{
		title:       "Посібник з убивства для хороших дівчат",
		author:      "Голі Джексон",
		genre:       "Детектив",
		coverURL:    "/static/image/good_girls_guide_murder.jpg",
		description: "Старшокласниця розслідує давнє вбивство у своєму містечку та знаходить докази, що суперечать офіційній версії.",
	},
	{
		title:       "Хірург",
		author:      "Тесс Ґеррітсен",
		genre:       "Детектив",
		coverURL:    "/static/image/the_surgeon.jpg",
		description: "Бостон шокують жорстокі вбивства, а слідчі розуміють, що копіюються методи маніяка з минулого.",
	},
	{
		title:       "Асистент",
		author:      "Тесс Ґеррітсен",
		genre:       "Детектив",
		coverURL:    "/static/image/the_apprentice.jpg",
		description: "Нові злочини натякають, що в хірурга-вбивці з'явився послідовник, і полювання йде одразу на двох.",
	},
	{
		title:       "Грішна",
		author:      "Тесс Ґеррітсен",
		genre:       "Детектив",
		coverURL:    "/static/image/the_sinner.jpg",
		description: "У монастирі знаходять мертву черницю, і розслідування відкриває моторошні таємниці за стінами обителі.",
	},
	{
		title:       "Двійник",
		author:      "Тесс Ґеррітсен",
		genre:       "Детектив",
		coverURL:    "/static/image/body_double.jpg",
		description: "Судово-медична експертка знаходить жінку, схожу на неї як дві краплі води, і починає шукати правду про себе.",
	},
	{
		title:       "Смертниці",
		author:      "Тесс Ґеррітсен",
		genre:       "Детектив",
		coverURL:    "/static/image/vanish.jpg",
		description: "У морзі «оживає» невідома жінка, а лікарня стає сценою небезпечної заручницької драми.",
	},
	{
		title:       "Клуб «Мефісто»",
		author:      "Тесс Ґеррітсен",
		genre:       "Детектив",
		coverURL:    "/static/image/mephisto_club.jpg",
		description: "Таємний клуб вивчає природу зла, а серія ритуальних убивств змушує повірити в його реальність.",
	},
	{
		title:       "Хранителі смерті",
		author:      "Тесс Ґеррітсен",
		genre:       "Детектив",
		coverURL:    "/static/image/keepers_of_death.jpg",
		description: "Старе вбивство пов'язує групу друзів, які багато років приховують спільну страшну таємницю.",
	},
	{
		title:       "Убивчий холод",
		author:      "Тесс Ґеррітсен",
		genre:       "Детектив",
		coverURL:    "/static/image/ice_cold.jpg",
		description: "Подорож у засніжені гори закінчується тим, що героїня опиняється в покинутому поселенні без людей.",
	},
	{
		title:       "Дівчина, яка мовчить",
		author:      "Тесс Ґеррітсен",
		genre:       "Детектив",
		coverURL:    "/static/image/the_silent_girl.jpg",
		description: "На даху китайського кварталу знаходять обезголовлене тіло, і слід веде до давньої легенди.",
	},
	{
		title:       "Останній, хто помре",
		author:      "Тесс Ґеррітсен",
		genre:       "Детектив",
		coverURL:    "/static/image/last_to_die.jpg",
		description: "Троє підлітків, які пережили сімейні трагедії, опиняються в елітній школі, де минуле наздоганяє їх знову.",
	},
	{
		title:       "Послухай мене",
		author:      "Тесс Ґеррітсен",
		genre:       "Детектив",
		coverURL:    "/static/image/listen_to_me.jpg",
		description: "Мати, якій ніхто не вірить, підозрює щось страшне у поведінці сусідів і починає власне розслідування.",
	},
	{
		title:       "Панк 57",
		author:      "Пенелопа Дуглас",
		genre:       "Роман",
		coverURL:    "/static/image/punk_57.jpg",
		description: "Двоє підлітків роками листуються і домовляються ніколи не зустрічатися, аж поки доля не зіштовхує їх у реальному житті.",
	},
	{
		title:       "Вбивство у «Східному експресі»",
		author:      "Аґата Крісті",
		genre:       "Детектив",
		coverURL:    "/static/image/murder_on_orient_express.jpg",
		description: "У знаменитому поїзді вбивають пасажира, і Еркюль Пуаро шукає убивцю серед замкненої групи людей.",
	},
	{
		title:       "Гаррі Поттер і філософський камінь",
		author:      "Дж. К. Ролінґ",
		genre:       "Фентезі",
		coverURL:    "/static/image/harry_potter1.jpg",
		description: "Хлопчик-сирота дізнається, що він чарівник, і вирушає до школи магії Гоґвартс.",
	},
}

// seedCatalog inserts the initial genres and books. Guarded by "does any
// genre already exist" so reopening an existing database is a no-op.
func (d *Database) seedCatalog() error {
	var count int64
	if err := d.DB.Model(&entities.Genre{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return d.DB.Transaction(func(tx *gorm.DB) error {
		genresByName := make(map[string]*entities.Genre, len(seedGenres))
		for _, name := range seedGenres {
			genre := &entities.Genre{Name: name}
			if err := tx.Create(genre).Error; err != nil {
				return fmt.Errorf("failed to create genre %s: %w", name, err)
			}
			genresByName[name] = genre
		}

		for _, sb := range seedBooks {
			genre, ok := genresByName[sb.genre]
			if !ok {
				return fmt.Errorf("seed book %q references unknown genre %q", sb.title, sb.genre)
			}
			book := &entities.Book{
				Title:       sb.title,
				Author:      sb.author,
				Description: sb.description,
				CoverURL:    sb.coverURL,
				GenreID:     &genre.ID,
			}
			if err := tx.Create(book).Error; err != nil {
				return fmt.Errorf("failed to create book %s: %w", sb.title, err)
			}
		}

		log.Printf("Seeded catalog: %d genres, %d books", len(seedGenres), len(seedBooks))
		return nil
	})
}
