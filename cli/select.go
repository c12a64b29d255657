package cli

import (
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/lanternworks/lantern-common/set"
)

func MultiSelect(label string, choices ...string) ([]string, error) {
	if len(choices) == 0 {
		return nil, nil
	}

	remaining := set.NewStrings(choices...)
	selections := set.NewStrings()

	names := append([]string{"[Done]"}, remaining.SortedEntries()...)

again:
	sel := &promptui.Select{
		Label: label,
		Items: names,
		Searcher: func(input string, index int) bool {
			if index == 0 {
				return false
			}
			if len(input) == 0 {
				return false
			}

			n := names[index]
			return strings.HasPrefix(n, input)
		},
	}

	idx, value, err := sel.Run()
	if err != nil {
		return nil, err
	}

	if idx != 0 {
		selections.Add(value)
		remaining.Remove(value)

		if remaining.Size() > 0 {
			names = append([]string{"[Done]"}, remaining.SortedEntries()...)
			goto again
		}
	}

	var choicesOut []string

	for _, c := range choices {
		if selections.Contains(c) {
			choicesOut = append(choicesOut, c)
		}
	}

	return choicesOut, nil
}
