package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeInvalidConfiguration = "PEBBLES_INVALID_CONFIGURATION"
	CodeUninitializedState   = "PEBBLES_UNINITIALIZED_STATE"
	CodeSessionExists        = "PEBBLES_SESSION_EXISTS"
	CodeRandomUnavailable    = "PEBBLES_RANDOM_UNAVAILABLE"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		CodeInvalidConfiguration: "Invalid game configuration: {{.PebblesCount}} pebbles with at most {{.MaxPebblesPerTurn}} per turn on {{.Difficulty}} difficulty",
		CodeUninitializedState:   "The game has not been started yet",
		CodeSessionExists:        "A game is already in progress; restart it to begin a new one",
		CodeRandomUnavailable:    "The random source is unavailable, please try again",
	},
}

var ptBRCatalog = &Catalog{
	locale: "pt-BR",
	messages: map[Code]string{
		CodeInvalidConfiguration: "Configuração de jogo inválida: {{.PebblesCount}} pedras com no máximo {{.MaxPebblesPerTurn}} por turno na dificuldade {{.Difficulty}}",
		CodeUninitializedState:   "O jogo ainda não foi iniciado",
		CodeSessionExists:        "Já existe um jogo em andamento; reinicie-o para começar outro",
		CodeRandomUnavailable:    "A fonte de aleatoriedade está indisponível, tente novamente",
	},
}
