package cmd

import (
	"os"
	"time"

	"github.com/BitPonyLLC/ledseq/buildinfo"
	"github.com/BitPonyLLC/ledseq/pkg/delay"
	"github.com/BitPonyLLC/ledseq/pkg/gpio"
	"github.com/BitPonyLLC/ledseq/pkg/keypad"
	"github.com/BitPonyLLC/ledseq/pkg/leds"
	"github.com/BitPonyLLC/ledseq/pkg/sequences"
	"github.com/BitPonyLLC/ledseq/pkg/shell"
	"github.com/BitPonyLLC/ledseq/pkg/util"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runShell claims the LED lines and hands the console to the menu shell. A
// locked-out user still exits with 0.
func runShell(cmd *cobra.Command) error {
	err := pidPath.CheckAndSet()
	if err != nil {
		return fail(3, err)
	}

	nice := viper.GetInt("nice")
	if nice != 0 {
		err = util.BeNice(nice)
		if err != nil {
			log.Warn().Err(err).Msg("continuing at normal priority")
		}
	}

	driver, err := gpio.Open(viper.GetString(gpioDriverLabel), gpio.Options{
		Chip:     viper.GetString(gpioChipLabel),
		Consumer: buildinfo.App.Name,
	}, &log.Logger)
	if err != nil {
		return fail(2, "unable to open gpio: %w", err)
	}

	defer func() {
		err := driver.Close()
		if err != nil {
			log.Err(err).Msg("unable to release gpio")
		}
	}()

	renderer := leds.NewRenderer(driver)
	err = renderer.Configure()
	if err != nil {
		return fail(2, err)
	}

	defer renderer.Off()

	in := keypad.NewInput(os.Stdin)
	table := delay.NewTable(delay.DefaultUnit)
	env := &sequences.Env{
		Renderer: renderer,
		Delayer: &delay.Delayer{
			Table:  table,
			Poller: keypad.NewPoller(in, table, &log.Logger),
		},
		Out: cmd.OutOrStdout(),
	}

	started := time.Now()
	state, err := shell.New(in, cmd.OutOrStdout(), env, &log.Logger).Run(cmd.Context())
	log.Info().Stringer("state", state).Dur("elapsed", time.Since(started)).Msg("shell finished")
	return err
}
