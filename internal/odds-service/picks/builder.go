package picks

import "fmt"

// Result é a resposta do endpoint de Shark Picks: a lista de picks
// ou, quando não há nada para mostrar, uma mensagem sentinela.
type Result struct {
	Picks   []Pick
	Message string
}

// Payload devolve o corpo JSON esperado pelo front: array de picks ou {"message": ...}
func (r Result) Payload() any {
	if r.Message != "" {
		return map[string]string{"message": r.Message}
	}
	return r.Picks
}

// Build aplica SelectBest a cada jogo, preservando a ordem e descartando jogos sem pick.
// onPick (opcional) é chamado para cada pick calculado; serve só para observabilidade.
func Build(sport string, games any, onPick func(Pick)) Result {
	list, ok := games.([]any)
	if !ok || len(list) == 0 {
		return Result{Message: fmt.Sprintf("No games available for %s", sport)}
	}

	out := make([]Pick, 0, len(list))
	for _, g := range list {
		p := SelectBest(g)
		if p == nil {
			continue
		}
		if onPick != nil {
			onPick(*p)
		}
		out = append(out, *p)
	}

	if len(out) == 0 {
		return Result{Message: fmt.Sprintf("No valid picks available for %s", sport)}
	}
	return Result{Picks: out}
}
