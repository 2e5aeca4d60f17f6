// Команда aurige обрабатывает выгрузки кандидатов из Aurige
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "aurige",
		Short: "Обработка выгрузок Aurige: сверка кандидатов с результатами экзаменов",
	}

	root.AddCommand(newSyncCmd())

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
