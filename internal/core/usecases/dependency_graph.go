// internal/core/usecases/dependency_graph.go
package usecases

import (
	"fmt"

	"vajra/internal/core/domain"
)

// dependencyGraph representa las dependencias de artifacts entre los pasos de
// un plan. Los módulos se ejecutan siempre en secuencia; el grafo sirve para
// validar el orden y para propagar un skip a los dependientes.
type dependencyGraph struct {
	// nodes mapea module id a su índice en steps
	nodes map[domain.ModuleID]int

	steps []domain.PlanStep

	// adjacencyList[A] = [B, C] significa que B y C consumen algo que produce A
	adjacencyList map[int][]int

	// inDegree mapea índice de paso a número de productores de los que depende
	inDegree map[int]int
}

// buildDependencyGraph construye el grafo a partir de Requires/Produces.
func buildDependencyGraph(steps []domain.PlanStep) *dependencyGraph {
	graph := &dependencyGraph{
		nodes:         make(map[domain.ModuleID]int, len(steps)),
		steps:         steps,
		adjacencyList: make(map[int][]int),
		inDegree:      make(map[int]int, len(steps)),
	}

	for i, step := range steps {
		graph.nodes[step.Module.ID] = i
		graph.inDegree[i] = 0
	}

	for i, step := range steps {
		for _, in := range step.Module.Requires {
			for j, producer := range steps {
				if i == j || !producesAny(producer.Module, in.Sources) {
					continue
				}
				// arista j -> i (i depende de j)
				graph.adjacencyList[j] = append(graph.adjacencyList[j], i)
				graph.inDegree[i]++
			}
		}
	}

	return graph
}

func producesAny(d domain.ModuleDescriptor, artifacts []string) bool {
	for _, a := range artifacts {
		if d.ProducesArtifact(a) {
			return true
		}
	}
	return false
}

// topologicalOrder ejecuta Kahn y devuelve los ids en un orden válido. A igual
// nivel conserva el orden del plan.
func (g *dependencyGraph) topologicalOrder() ([]domain.ModuleID, error) {
	n := len(g.steps)
	current := make(map[int]int, n)
	for i := 0; i < n; i++ {
		current[i] = g.inDegree[i]
	}

	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if current[i] == 0 {
			queue = append(queue, i)
		}
	}

	order := make([]domain.ModuleID, 0, n)
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		order = append(order, g.steps[idx].Module.ID)

		for _, dep := range g.adjacencyList[idx] {
			current[dep]--
			if current[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if len(order) != n {
		unprocessed := make([]string, 0)
		for i := 0; i < n; i++ {
			if current[i] > 0 {
				unprocessed = append(unprocessed, g.steps[i].Module.Name)
			}
		}
		return nil, fmt.Errorf("circular dependency detected involving modules: %v", unprocessed)
	}
	return order, nil
}

// validateOrder comprueba que ningún paso del plan corre antes que uno de sus
// productores.
func (g *dependencyGraph) validateOrder() error {
	if _, err := g.topologicalOrder(); err != nil {
		return err
	}
	for from, deps := range g.adjacencyList {
		for _, to := range deps {
			if to < from {
				return fmt.Errorf("%s runs before its producer %s",
					g.steps[to].Module.Name, g.steps[from].Module.Name)
			}
		}
	}
	return nil
}

// dependents devuelve los dependientes transitivos de id en orden de plan.
func (g *dependencyGraph) dependents(id domain.ModuleID) []domain.ModuleID {
	start, ok := g.nodes[id]
	if !ok {
		return nil
	}

	seen := map[int]bool{start: true}
	queue := []int{start}
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		for _, dep := range g.adjacencyList[idx] {
			if !seen[dep] {
				seen[dep] = true
				queue = append(queue, dep)
			}
		}
	}

	out := make([]domain.ModuleID, 0, len(seen)-1)
	for i, step := range g.steps {
		if i != start && seen[i] {
			out = append(out, step.Module.ID)
		}
	}
	return out
}

// dependentNames es dependents con nombres, para mensajes al operador.
func (g *dependencyGraph) dependentNames(id domain.ModuleID) []string {
	ids := g.dependents(id)
	names := make([]string, 0, len(ids))
	for _, d := range ids {
		names = append(names, g.steps[g.nodes[d]].Module.Name)
	}
	return names
}

// starvedBy indica si dep se queda sin entrada porque from terminó sin
// producirla: alguna de sus entradas alimentadas por from no está en disco y
// ningún otro paso entre from y dep la produce.
func (g *dependencyGraph) starvedBy(from, dep domain.ModuleID, ready func(artifact string) bool) bool {
	fi, ok := g.nodes[from]
	if !ok {
		return false
	}
	di, ok := g.nodes[dep]
	if !ok {
		return false
	}
	for _, in := range g.steps[di].Module.Requires {
		if !producesAny(g.steps[fi].Module, in.Sources) {
			continue
		}
		if !g.suppliable(in.Sources, fi, di, ready) {
			return true
		}
	}
	return false
}

func (g *dependencyGraph) suppliable(sources []string, after, consumer int, ready func(string) bool) bool {
	for _, s := range sources {
		if ready(s) {
			return true
		}
	}
	for i := after + 1; i < consumer; i++ {
		if producesAny(g.steps[i].Module, sources) {
			return true
		}
	}
	return false
}

// directDependents devuelve los consumidores directos de id en orden de plan.
func (g *dependencyGraph) directDependents(id domain.ModuleID) []domain.ModuleID {
	idx, ok := g.nodes[id]
	if !ok {
		return nil
	}
	seen := make(map[int]bool)
	for _, dep := range g.adjacencyList[idx] {
		seen[dep] = true
	}
	out := make([]domain.ModuleID, 0, len(seen))
	for i, step := range g.steps {
		if seen[i] {
			out = append(out, step.Module.ID)
		}
	}
	return out
}
