package cmd

import (
	"flag"
	"fmt"
)

// completionCommand prints a completion script for the requested shell.
func completionCommand(args []string) error {
	fs := flag.NewFlagSet("kept completion", flag.ContinueOnError)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("missing shell (expected bash|zsh|fish|powershell)")
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args()[1:])
	}

	switch fs.Arg(0) {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	case "powershell", "pwsh":
		fmt.Print(powershellCompletion)
	default:
		return fmt.Errorf("unsupported shell %q (expected bash|zsh|fish|powershell)", fs.Arg(0))
	}
	return nil
}

const bashCompletion = `# kept bash completion
# Install: kept completion bash > /etc/bash_completion.d/kept
_kept() {
    local cur prev commands
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    commands="tui add ls done rm edit mv assign cat clear doctor init completion version help"

    case "${prev}" in
        cat)
            COMPREPLY=( $(compgen -W "ls add mv rm" -- "${cur}") )
            return 0
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh fish powershell" -- "${cur}") )
            return 0
            ;;
    esac

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "${commands}" -- "${cur}") )
    fi
}
complete -F _kept kept
`

const zshCompletion = `#compdef kept
# kept zsh completion
# Install: kept completion zsh > "${fpath[1]}/_kept"
_kept() {
    local -a commands
    commands=(
        'tui:Open the interactive todo list'
        'add:Add a todo'
        'ls:List todos'
        'done:Toggle a todo between active and completed'
        'rm:Delete a todo'
        'edit:Retitle a todo'
        'mv:Move a todo to a 1-based position'
        'assign:Assign a todo to a category'
        'cat:Manage categories'
        'clear:Delete all todos and categories'
        'doctor:Check config and state file validity'
        'init:Create the config, state, and schema files'
        'completion:Print a shell completion script'
        'version:Show version information'
        'help:Show help'
    )

    if (( CURRENT == 2 )); then
        _describe 'command' commands
        return
    fi

    case "${words[2]}" in
        cat)
            _values 'subcommand' ls add mv rm
            ;;
        completion)
            _values 'shell' bash zsh fish powershell
            ;;
    esac
}
_kept "$@"
`

const fishCompletion = `# kept fish completion
# Install: kept completion fish > ~/.config/fish/completions/kept.fish
complete -c kept -f
complete -c kept -n '__fish_use_subcommand' -a tui -d 'Open the interactive todo list'
complete -c kept -n '__fish_use_subcommand' -a add -d 'Add a todo'
complete -c kept -n '__fish_use_subcommand' -a ls -d 'List todos'
complete -c kept -n '__fish_use_subcommand' -a done -d 'Toggle a todo between active and completed'
complete -c kept -n '__fish_use_subcommand' -a rm -d 'Delete a todo'
complete -c kept -n '__fish_use_subcommand' -a edit -d 'Retitle a todo'
complete -c kept -n '__fish_use_subcommand' -a mv -d 'Move a todo to a 1-based position'
complete -c kept -n '__fish_use_subcommand' -a assign -d 'Assign a todo to a category'
complete -c kept -n '__fish_use_subcommand' -a cat -d 'Manage categories'
complete -c kept -n '__fish_use_subcommand' -a clear -d 'Delete all todos and categories'
complete -c kept -n '__fish_use_subcommand' -a doctor -d 'Check config and state file validity'
complete -c kept -n '__fish_use_subcommand' -a init -d 'Create the config, state, and schema files'
complete -c kept -n '__fish_use_subcommand' -a completion -d 'Print a shell completion script'
complete -c kept -n '__fish_use_subcommand' -a version -d 'Show version information'
complete -c kept -n '__fish_use_subcommand' -a help -d 'Show help'
complete -c kept -n '__fish_seen_subcommand_from cat' -a 'ls add mv rm'
complete -c kept -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish powershell'
`

const powershellCompletion = `# kept PowerShell completion
# Install: kept completion powershell | Out-String | Invoke-Expression
Register-ArgumentCompleter -Native -CommandName kept -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)
    $commands = @('tui', 'add', 'ls', 'done', 'rm', 'edit', 'mv', 'assign', 'cat', 'clear', 'doctor', 'init', 'completion', 'version', 'help')
    $commands | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
    }
}
`
