//go:build !notranslate

package main

import _ "github.com/sglre6355/hibiki/internal/modules/translate"
