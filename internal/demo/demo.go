// Package demo generates a plausible French demo dataset: clustered
// friends, shared events over the trailing year, birthdays and rich profile
// fields. Intended for seeding a fresh store.
package demo

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/tartampluch/dunbar/internal/config"
	"github.com/tartampluch/dunbar/internal/store"
	"github.com/tartampluch/dunbar/internal/timeutil"
)

var firstNames = []string{
	"Chloé", "Lucas", "Inès", "Mehdi", "Aya", "Léa", "Adam", "Camille", "Noah", "Fatou",
	"Hugo", "Nina", "Yanis", "Aïcha", "Théo", "Manon", "Rayan", "Jiwoo", "Lina", "Sofiane",
	"Océane", "Moussa", "Clara", "Youssef", "Tao", "Sacha", "Zoé", "Naïm", "Imane", "Omar",
	"Yara", "Rachid", "Samira", "Lucie", "Alexandre", "Selma", "Pierre", "Karim", "Leïla",
	"Val", "Raph", "Igor", "Sonia", "Mathis", "Maëlys", "Nora", "Mina", "Maya",
}

var lastNames = []string{
	"Dupont", "Martin", "Bernard", "Durand", "Moreau", "Lefebvre", "Fournier", "Mercier",
	"Faure", "Andre", "Benali", "El Mansouri", "Traoré", "Diop", "Nguyen", "Zhang",
	"Haddad", "Khan", "Rossi", "Gonzalez", "Petit", "Renaud", "Barbier", "Lemaire",
	"Noël", "Boucher",
}

var places = []string{
	"Canal Saint-Martin", "Buttes-Chaumont", "Montmartre", "Bourse de Commerce",
	"Belleville", "Le Marais", "Station F", "Parc Monceau", "Jardin du Luxembourg",
	"Bercy", "Pont des Arts", "Bastille", "Aligre", "Saint-Germain", "Parc de la Villette",
}

var activities = []string{
	"apéro", "expo", "vernissage", "vélo", "café", "pique-nique", "concert", "ciné",
	"footing", "meetup", "brunch", "fromages", "boulot",
}

var tags = []string{
	"#apero", "#expo", "#vernissage", "#velo", "#run", "#cafe", "#picnic", "#concert",
	"#cine", "#meetup", "#famille", "#boulot", "#amis", "#art",
}

var quotes = []string{
	"Toujours partant·e pour un café !", "Jamais sans mon vélo.",
	"Le fromage, c'est la vie.", "On se fait un apéro ?",
	"Paris sous la pluie, c'est mieux.", "Vivement le week-end !",
}

var foodLikes = []string{
	"fromage", "pain", "viennoiseries", "tapas", "sushi", "ramen", "couscous",
	"tajine", "falafel", "galettes", "crêpes", "pizza", "pasta",
}

var foodDislikes = []string{"choux de Bruxelles", "réglisse", "coriandre", "anchois", "abats"}

var carModels = []string{"Twingo", "Clio", "208", "Model 3", "Zoé", "C3", "Yaris", "Micra", "Golf", "Corsa"}

var workplaces = []string{
	"Station F", "La Défense", "Bercy", "Montparnasse", "Opéra", "Bastille",
	"République", "Nation",
}

var schedules = []string{"9h-17h", "8h-16h", "10h-18h", "horaires flex"}

var dateLabels = []string{"Concert", "Déménagement", "Nouvel emploi", "Voyage", "Soirée mémorable"}
var giftOccasions = []string{"Anniversaire", "Noël", "Remerciement", "Fête"}
var giftItems = []string{"Livre", "Bouteille de vin", "Plante verte", "Boîte de chocolats", "Écharpe"}
var postcardPlaces = []string{"Bretagne", "Marseille", "Lyon", "Biarritz", "Annecy", "Lisbonne", "Rome"}
var postcardNotes = []string{"Belle météo", "Vieux port", "Plage", "Musées", "Randonnée"}

// Generate builds a demo state of count friends. The same seed and now
// always produce the same dataset.
func Generate(count int, seed int64, now time.Time) store.State {
	rng := rand.New(rand.NewSource(seed))
	st := store.NewState()

	sample := func(pool []string) string { return pool[rng.Intn(len(pool))] }
	daysAgo := func(n int) string {
		return timeutil.FormatYMD(timeutil.Truncate(now).AddDate(0, 0, -n))
	}

	// Unique full names, drawn in seed order so ids are stable.
	var names []string
	seen := make(map[string]struct{})
	for len(names) < count {
		name := sample(firstNames) + " " + sample(lastNames)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	for i, name := range names {
		st.Friends = append(st.Friends, &store.Friend{
			ID:       fmt.Sprintf("f_%03d", i+1),
			Name:     name,
			Birthday: daysAgo(7000 + rng.Intn(13000)),
			Notes: fmt.Sprintf("Ami·e rencontré·e à %s. %s %s",
				sample(places), sample(tags), sample(tags)),
			Profile: store.Profile{
				Likes:        fmt.Sprintf("Aime %s et %s", sample(foodLikes), sample(activities)),
				Dislikes:     "N'aime pas " + sample(foodDislikes),
				FoodLikes:    sample(foodLikes),
				FoodDislikes: sample(foodDislikes),
				WifiPassword: fmt.Sprintf("demo-%08x", rng.Uint32()),
				CarModel:     sample(carModels),
				Workplace:    sample(workplaces),
				Schedule:     sample(schedules),
				FutureIdeas: fmt.Sprintf("Aller au %s; %s; %s.",
					sample(places), sample(activities), sample(activities)),
				Quotes: sample(quotes),
			},
			Relationships: store.NewIDSet(),
		})
	}

	edges := connectClusters(st.Friends, rng)
	for _, e := range edges {
		st.Friend(e[0]).Relationships.Add(e[1])
		st.Friend(e[1]).Relationships.Add(e[0])
	}

	generateEvents(&st, edges, rng, daysAgo)
	sprinkleMemorabilia(&st, rng, daysAgo, sample)

	slog.With(config.LogKeyComponent, config.CompDemo).Info(config.MsgDemoSeeded,
		config.LogKeyFriends, len(st.Friends),
		config.LogKeyEvents, len(st.Events),
	)
	return st
}

// connectClusters splits friends into clusters of 8–14, densely connects
// each cluster and adds one sparse bridge between neighbors.
func connectClusters(friends []*store.Friend, rng *rand.Rand) [][2]string {
	var clusters [][]*store.Friend
	remaining := friends
	for len(remaining) > 0 {
		size := 8 + rng.Intn(7)
		if size > len(remaining) {
			size = len(remaining)
		}
		clusters = append(clusters, remaining[:size])
		remaining = remaining[size:]
	}

	var edges [][2]string
	seen := make(map[[2]string]struct{})
	addEdge := func(a, b string) {
		if a == b {
			return
		}
		if b < a {
			a, b = b, a
		}
		key := [2]string{a, b}
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			edges = append(edges, key)
		}
	}

	for _, cluster := range clusters {
		p := 0.4 + rng.Float64()*0.2
		for i := 0; i < len(cluster); i++ {
			for j := i + 1; j < len(cluster); j++ {
				if rng.Float64() < p {
					addEdge(cluster[i].ID, cluster[j].ID)
				}
			}
		}
	}
	for c := 0; c+1 < len(clusters); c++ {
		a := clusters[c][rng.Intn(len(clusters[c]))]
		b := clusters[c+1][rng.Intn(len(clusters[c+1]))]
		addEdge(a.ID, b.ID)
	}
	return edges
}

// generateEvents spreads shared events over the trailing year, biased
// toward connected pairs.
func generateEvents(st *store.State, edges [][2]string, rng *rand.Rand, daysAgo func(int) string) {
	ids := make([]string, len(st.Friends))
	for i, f := range st.Friends {
		ids[i] = f.ID
	}

	count := int(float64(len(ids)) * (1.2 + rng.Float64()))
	for i := 0; i < count; i++ {
		place := places[rng.Intn(len(places))]
		act := activities[rng.Intn(len(activities))]

		var participants []string
		if rng.Float64() < 0.6 && len(edges) > 0 {
			e := edges[rng.Intn(len(edges))]
			participants = []string{e[0], e[1]}
			if rng.Float64() < 0.5 {
				participants = append(participants, ids[rng.Intn(len(ids))])
			}
		} else {
			participants = []string{ids[rng.Intn(len(ids))]}
			if rng.Float64() < 0.5 {
				participants = append(participants, ids[rng.Intn(len(ids))])
			}
		}
		participants = dedup(participants)

		ev := &store.Event{
			ID:    fmt.Sprintf("ev_%03d", i+1),
			Date:  daysAgo(rng.Intn(361)),
			Title: act + " " + place,
			Notes: fmt.Sprintf("%s %s %s %s",
				act, place, tags[rng.Intn(len(tags))], tags[rng.Intn(len(tags))]),
			Location:     place,
			Participants: participants,
		}
		st.Events[ev.ID] = ev
		for _, pid := range participants {
			f := st.Friend(pid)
			f.EventIDs = append(f.EventIDs, ev.ID)
		}
	}
}

func sprinkleMemorabilia(st *store.State, rng *rand.Rand, daysAgo func(int) string, sample func([]string) string) {
	for _, f := range st.Friends {
		for i := 0; i < rng.Intn(4); i++ {
			f.ImportantDates = append(f.ImportantDates, store.ImportantDate{
				Date:  daysAgo(rng.Intn(366)),
				Label: sample(dateLabels),
			})
		}
		for i := 0; i < rng.Intn(3); i++ {
			f.Gifts = append(f.Gifts, store.Gift{
				Date:        daysAgo(rng.Intn(366)),
				Occasion:    sample(giftOccasions),
				Description: sample(giftItems),
			})
		}
		for i := 0; i < rng.Intn(3); i++ {
			f.Postcards = append(f.Postcards, store.Postcard{
				Date:        daysAgo(rng.Intn(366)),
				Location:    sample(postcardPlaces),
				Description: sample(postcardNotes),
			})
		}
	}
}

func dedup(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

