package seed

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/bookzapp/bookz-server/internal/domain"
)

var (
	maleFirstNames = []string{
		"Taras", "Ivan", "Petro", "Mykola", "Andriy", "Oleh", "Bohdan",
		"Vasyl", "Dmytro", "Serhiy", "Yuriy", "Oleksandr", "Pavlo",
		"Roman", "Maksym", "Nazar", "Ostap", "Yaroslav",
	}
	femaleFirstNames = []string{
		"Olena", "Oksana", "Iryna", "Kateryna", "Natalia", "Lesya",
		"Maria", "Sofia", "Hanna", "Tetiana", "Yulia", "Lina",
		"Solomiya", "Daryna", "Zoryana", "Vira",
	}
	lastNames = []string{
		"Shevchenko", "Kovalenko", "Bondarenko", "Tkachenko", "Kravchenko",
		"Melnyk", "Shevchuk", "Boyko", "Kovalchuk", "Lysenko", "Rudenko",
		"Savchenko", "Petrenko", "Marchenko", "Pavlenko", "Kharchenko",
		"Moroz", "Klymenko", "Sydorenko", "Kostenko", "Honchar",
		"Vynnychenko", "Stus", "Franko", "Ukrainka", "Symonenko",
	}
	malePatronymicSuffixes   = []string{"ovych", "iyovych", "yovych"}
	femalePatronymicSuffixes = []string{"ivna", "iyivna"}

	titleWords = []string{
		"Garden", "Shadow", "River", "Winter", "Voices", "Stone", "Night",
		"Harvest", "Journey", "Silence", "Fire", "Steppe", "Letters",
		"Bridge", "Songs", "Memory", "Light", "Forest", "Return", "Dawn",
	}
	publishers = []string{
		"Veselka", "Osnovy", "Ranok", "Folio", "Smoloskyp",
		"A-BA-BA-HA-LA-MA-HA", "Staryi Lev", "Krytyka",
	}
	cities = []string{
		"Kyiv", "Lviv", "Kharkiv", "Odesa", "Dnipro", "Poltava",
		"Chernivtsi", "Uzhhorod",
	}
	languages = []string{"uk", "en", "pl", "de", "fr"}

	// Mobile and Kyiv landline operator prefixes.
	phonePrefixes = []int{44, 50, 63, 66, 67, 68, 93, 95, 96, 97, 98, 99}
)

// generator produces fake catalog data. Emails, phones, ISBNs and name
// triples are guaranteed unique within one generator instance so that a
// whole seeding run can insert inside a single transaction without
// tripping unique constraints.
type generator struct {
	rng       *rand.Rand
	usedNames map[string]struct{}
	emailSeq  int
	phoneSeq  int
	isbnSeq   int
}

func newGenerator(rng *rand.Rand) *generator {
	return &generator{
		rng:       rng,
		usedNames: map[string]struct{}{},
	}
}

func (g *generator) personName() domain.FullName {
	for attempt := 0; ; attempt++ {
		var first, middle string
		if g.rng.Intn(2) == 0 {
			first = pick(g.rng, maleFirstNames)
			middle = pick(g.rng, maleFirstNames) + pick(g.rng, malePatronymicSuffixes)
		} else {
			first = pick(g.rng, femaleFirstNames)
			middle = pick(g.rng, maleFirstNames) + pick(g.rng, femalePatronymicSuffixes)
		}
		// Roughly a third of people go without a recorded patronymic.
		if g.rng.Intn(10) < 3 {
			middle = ""
		}

		name := domain.FullName{
			FirstName:  first,
			LastName:   pick(g.rng, lastNames),
			MiddleName: middle,
		}
		if attempt > 50 {
			// The tables are exhausted for this volume, disambiguate.
			name.MiddleName = fmt.Sprintf("%s %d", name.MiddleName, attempt)
		}
		key := name.String()
		if _, taken := g.usedNames[key]; taken {
			continue
		}
		g.usedNames[key] = struct{}{}
		return name
	}
}

func (g *generator) book() *domain.Book {
	b := &domain.Book{
		Title:              g.title(),
		Publisher:          pick(g.rng, publishers),
		PlaceOfPublication: pick(g.rng, cities),
		PublishedYear:      1950 + g.rng.Intn(75),
		ISBN:               g.isbn13(),
		Pages:              50 + g.rng.Intn(951),
	}
	if g.rng.Intn(10) < 8 {
		price := math.Round((5+g.rng.Float64()*195)*100) / 100
		b.Price = &price
	}
	if g.rng.Intn(10) < 7 {
		b.Language = pick(g.rng, languages)
	}
	return b
}

func (g *generator) customer() *domain.Customer {
	name := g.personName()
	g.emailSeq++
	g.phoneSeq++

	prefix := phonePrefixes[g.phoneSeq%len(phonePrefixes)]
	raw := fmt.Sprintf("0%02d%07d", prefix, 1000000+g.phoneSeq)

	return &domain.Customer{
		FullName: name,
		Email:    fmt.Sprintf("%s.%s.%d@example.com", name.FirstName, name.LastName, g.emailSeq),
		Phone:    domain.CanonicalPhone(raw),
	}
}

func (g *generator) title() string {
	n := 2 + g.rng.Intn(3)
	words := make([]string, 0, n+1)
	words = append(words, "The")
	for i := 0; i < n; i++ {
		words = append(words, pick(g.rng, titleWords))
	}
	s := words[0]
	for _, w := range words[1:] {
		s += " " + w
	}
	return s
}

// isbn13 builds a well-formed EAN-13 from a sequence counter.
func (g *generator) isbn13() string {
	g.isbnSeq++
	digits := fmt.Sprintf("978%09d", g.isbnSeq)
	sum := 0
	for i, r := range digits {
		d := int(r - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	check := (10 - sum%10) % 10
	return fmt.Sprintf("%s%d", digits, check)
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}

// pickWeighted selects an item with probability proportional to its
// weight. Weights must be positive and len(weights) == len(items).
func pickWeighted[T any](rng *rand.Rand, items []T, weights []int) T {
	total := 0
	for _, w := range weights {
		total += w
	}
	n := rng.Intn(total)
	for i, w := range weights {
		if n < w {
			return items[i]
		}
		n -= w
	}
	return items[len(items)-1]
}
