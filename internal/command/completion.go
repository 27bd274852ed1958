// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/prefcache/internal/meta"
)

const bashCompletionScript = `# bash completion for prefctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_prefctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "get set rm ls purge import diff edit completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local store="--backend --dir --db --bucket --prefix --region --profile --endpoint --codec"
    local present="--color -c --output -o --tldr"

    case "$cmd" in
        get)
            local opts="$store $present --path -p --default --string"
            ;;
        set)
            local opts="$store --string --tldr"
            ;;
        rm)
            local opts="$store --tldr"
            ;;
        ls)
            local opts="$store $present --filter -f --sort -s --titles -t --width -w --quiet -q"
            ;;
        purge)
            local opts="$store --older-than --tldr"
            ;;
        import)
            local opts="$store --dry-run -n --tldr"
            ;;
        diff)
            local opts="$store $present"
            ;;
        edit)
            local opts="$store --default --string --tldr"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$store"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
            return 0
            ;;
        --backend)
            COMPREPLY=( $(compgen -W "file sqlite s3 memory" -- "$cur") )
            return 0
            ;;
        --codec)
            COMPREPLY=( $(compgen -W "json yaml" -- "$cur") )
            return 0
            ;;
        --dir)
            COMPREPLY=( $(compgen -o dirnames -- "$cur") )
            return 0
            ;;
        --db)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    case "$cmd" in
        import)
            COMPREPLY=( $(compgen -f -X '!*.hcl' -- "$cur") )
            ;;
        get|set|rm|diff|edit)
            COMPREPLY=( $(compgen -W "$(prefctl ls -q 2>/dev/null)" -- "$cur") )
            ;;
    esac
    return 0
}

complete -F _prefctl prefctl
`

const zshCompletionScript = `#compdef prefctl

_prefctl_keys() {
  local -a keys
  keys=(${(f)"$(prefctl ls -q 2>/dev/null)"})
  _describe -t keys 'keys' keys
}

_prefctl() {
  local -a cmds
  cmds=(
    'get:show stored values'
    'set:store a value'
    'rm:remove keys'
    'ls:list stored keys'
    'purge:remove records older than a given age'
    'import:store the attributes of an HCL file'
    'diff:compare a value with another key or a JSON file'
    'edit:edit a value interactively'
    'completion:generate shell completion script'
  )

  local -a store
  store=(
  '--backend[store backend]:backend:(file sqlite s3 memory)'
  '--dir[file backend directory]:dir:_directories'
  '--db[sqlite database file]:db:_files'
  '--bucket[s3 bucket]:bucket'
  '--prefix[s3 key prefix]:prefix'
  '--region[s3 region]:region'
  '--profile[aws profile]:profile'
  '--endpoint[s3 compatible endpoint]:url'
  '--codec[value encoding]:codec:(json yaml)'
  )

  local -a present
  present=(
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'prefctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    get)
      _arguments -C $store $present \
        '(-p --path)'{-p,--path}'[gjson path]:path' \
        '--default[value for unset keys]:value' \
        '--string[treat values as strings]' \
        '*:key:_prefctl_keys'
      ;;
    set)
      _arguments -C $store \
        '--string[store the value as a string]' \
        '1:key:_prefctl_keys' '2:value'
      ;;
    rm)
      _arguments -C $store '*:key:_prefctl_keys'
      ;;
    ls)
      _arguments -C $store $present \
        '(-f --filter)'{-f,--filter}'[filters to apply]:filters' \
        '(-s --sort)'{-s,--sort}'[sort columns]:columns' \
        '(-t --titles)'{-t,--titles}'[show titles]' \
        '(-w --width)'{-w,--width}'[preview width]:width' \
        '(-q --quiet)'{-q,--quiet}'[print only keys]'
      ;;
    purge)
      _arguments -C $store '--older-than[maximum age]:duration'
      ;;
    import)
      _arguments -C $store \
        '(-n --dry-run)'{-n,--dry-run}'[show changes only]' \
        '1:file:_files -g "*.hcl"'
      ;;
    diff)
      _arguments -C $store $present '1:key:_prefctl_keys' '2:key or file:_files'
      ;;
    edit)
      _arguments -C $store \
        '--default[value shown while unset]:value' \
        '--string[store input as a string]' \
        '1:key:_prefctl_keys'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _prefctl prefctl
`

// CompletionCommandAction prints the completion script for the requested
// shell, falling back to $SHELL.
func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer
	shell := cmd.Args().First()
	if shell == "" {
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		return fmt.Errorf("usage: %s", cmd.UsageText)
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "prefctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
